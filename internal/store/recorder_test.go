package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/poweradmin/settleport/internal/claim"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	ns, err := StartEmbedded(t.TempDir())
	if err != nil {
		t.Fatalf("failed to start NATS: %v", err)
	}
	defer ns.Shutdown()

	nc, err := ConnectInProcess(ns)
	if err != nil {
		t.Fatalf("failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	js, err := CreateJetStream(nc)
	if err != nil {
		t.Fatalf("failed to create JetStream: %v", err)
	}

	stream, err := SetupStream(ctx, js)
	if err != nil {
		t.Fatalf("failed to setup stream: %v", err)
	}

	rec := NewRecorder(js, "test-session")

	t.Run("RecordJurisdiction publishes a jurisdiction event", func(t *testing.T) {
		if err := rec.RecordJurisdiction(ctx, "Florida"); err != nil {
			t.Fatalf("RecordJurisdiction failed: %v", err)
		}
	})

	t.Run("RecordSignature publishes a signature event", func(t *testing.T) {
		sig := claim.ReleaseSignature{
			SignatureText: "Jane Doe",
			Agreed:        true,
			SignedAt:      time.Now(),
		}
		if err := rec.RecordSignature(ctx, sig); err != nil {
			t.Fatalf("RecordSignature failed: %v", err)
		}
	})

	t.Run("RecordPayment publishes a payment event", func(t *testing.T) {
		detail := claim.PaymentDetail{
			Method:            claim.MethodZelle,
			AccountIdentifier: "user@example.com",
			Confirmed:         true,
		}
		if err := rec.RecordPayment(ctx, detail, "REF-abcd1234"); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	})

	t.Run("events are readable from the stream in order", func(t *testing.T) {
		consumer, err := CreateConsumer(ctx, stream, "test-reader")
		if err != nil {
			t.Fatalf("failed to create consumer: %v", err)
		}

		batch, err := consumer.Fetch(3, jetstream.FetchMaxWait(2*time.Second))
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		var kinds []string
		for msg := range batch.Messages() {
			var ev Event
			if err := json.Unmarshal(msg.Data(), &ev); err != nil {
				t.Fatalf("failed to unmarshal event: %v", err)
			}
			if ev.Session != "test-session" {
				t.Errorf("event session = %q, want test-session", ev.Session)
			}
			if ev.Timestamp.IsZero() {
				t.Error("event timestamp should be set")
			}
			kinds = append(kinds, ev.Kind)
			_ = msg.Ack()
		}

		want := []string{KindJurisdiction, KindSignature, KindPayment}
		if len(kinds) != len(want) {
			t.Fatalf("expected %d events, got %d", len(want), len(kinds))
		}
		for i := range want {
			if kinds[i] != want[i] {
				t.Errorf("event %d kind = %q, want %q", i, kinds[i], want[i])
			}
		}
	})
}

func TestSubjects(t *testing.T) {
	if got := SubjectForEvent("abc", KindPayment); got != "settleport.abc.payment" {
		t.Errorf("SubjectForEvent = %q", got)
	}
	if got := SubjectForSession("abc"); got != "settleport.abc.>" {
		t.Errorf("SubjectForSession = %q", got)
	}
}
