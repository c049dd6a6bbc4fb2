package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/poweradmin/settleport/internal/claim"
	"github.com/poweradmin/settleport/internal/logger"
)

const (
	streamName = "settleport_events"

	// Event kinds
	KindJurisdiction = "jurisdiction"
	KindSignature    = "signature"
	KindPayment      = "payment"
)

// SubjectForSession returns the wildcard subject pattern for all events in
// a session. Example: "settleport.b1946ac9.>"
func SubjectForSession(session string) string {
	return fmt.Sprintf("settleport.%s.>", session)
}

// SubjectForEvent returns the specific subject for an event kind in a
// session. Example: "settleport.b1946ac9.payment"
func SubjectForEvent(session, kind string) string {
	return fmt.Sprintf("settleport.%s.%s", session, kind)
}

// SetupStream creates or updates the JetStream stream for portal events.
// Subject pattern settleport.> matches all sessions and event kinds.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"settleport.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour, // 30 day retention
	})
}

// CreateConsumer creates a durable consumer for reading event history.
func CreateConsumer(ctx context.Context, stream jetstream.Stream, name string) (jetstream.Consumer, error) {
	return stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       name,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
}

// Event is one recorded portal notification. Events are append-only; the
// wizard never reads them back during a session.
type Event struct {
	Timestamp time.Time       `json:"timestamp"`
	Session   string          `json:"session"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

// Recorder publishes portal events to the JetStream event log.
type Recorder struct {
	js      jetstream.JetStream
	session string
}

// NewRecorder creates a Recorder scoped to one portal session.
func NewRecorder(js jetstream.JetStream, session string) *Recorder {
	return &Recorder{js: js, session: session}
}

// Session returns the session identifier this recorder is scoped to.
func (r *Recorder) Session() string {
	return r.session
}

// RecordJurisdiction records the confirmed jurisdiction.
func (r *Recorder) RecordJurisdiction(ctx context.Context, state string) error {
	return r.publish(ctx, KindJurisdiction, map[string]string{"state": state})
}

// RecordSignature records an executed release signature.
func (r *Recorder) RecordSignature(ctx context.Context, sig claim.ReleaseSignature) error {
	return r.publish(ctx, KindSignature, sig)
}

// RecordPayment records an accepted disbursement instruction.
func (r *Recorder) RecordPayment(ctx context.Context, detail claim.PaymentDetail, reference string) error {
	return r.publish(ctx, KindPayment, map[string]interface{}{
		"method":             detail.Method,
		"account_identifier": detail.AccountIdentifier,
		"confirmed":          detail.Confirmed,
		"reference":          reference,
	})
}

func (r *Recorder) publish(ctx context.Context, kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal %s payload: %v", kind, err)
		return fmt.Errorf("marshaling %s payload: %w", kind, err)
	}

	event := Event{
		Timestamp: time.Now(),
		Session:   r.session,
		Kind:      kind,
		Payload:   raw,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	subject := SubjectForEvent(r.session, kind)
	logger.Debug("Publishing event: session=%s kind=%s", r.session, kind)

	ack, err := r.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return fmt.Errorf("publishing event: %w", err)
	}

	logger.Debug("Event published: seq=%d", ack.Sequence)
	return nil
}
