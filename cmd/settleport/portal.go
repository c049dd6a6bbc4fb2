package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/poweradmin/settleport/internal/backend"
	"github.com/poweradmin/settleport/internal/config"
	"github.com/poweradmin/settleport/internal/controller"
	"github.com/poweradmin/settleport/internal/logger"
	"github.com/poweradmin/settleport/internal/store"
	"github.com/poweradmin/settleport/internal/tui"
	"github.com/poweradmin/settleport/internal/validate"
)

// runPortal wires the collaborators and launches the claimant portal.
func runPortal(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if lvl, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.Default.SetLevel(lvl)
	}

	opts := controller.Options{
		Verifier: backend.NewMockVerifier(time.Duration(cfg.VerifyDelayMs) * time.Millisecond),
		Gateway:  backend.NewMockGateway(time.Duration(cfg.SubmitDelayMs) * time.Millisecond),
		ReleasePolicy: validate.ReleasePolicy{
			RequireFullScrollRead: cfg.RequireFullScrollRead,
		},
		Timeout: time.Duration(cfg.SubmitTimeoutMs) * time.Millisecond,
	}

	// The event store is supporting infrastructure: when it cannot start,
	// the portal runs without step records rather than refusing service.
	ns, err := store.StartEmbedded(cfg.DataDir)
	if err != nil {
		logger.Warn("Event store unavailable, continuing without records: %v", err)
	} else {
		nc, err := store.ConnectInProcess(ns)
		if err != nil {
			logger.Warn("Event store connection failed: %v", err)
			ns.Shutdown()
		} else {
			defer func() { _ = store.Shutdown(nc, ns) }()
			js, err := store.CreateJetStream(nc)
			if err != nil {
				logger.Warn("JetStream unavailable: %v", err)
			} else if _, err := store.SetupStream(cmd.Context(), js); err != nil {
				logger.Warn("Event stream setup failed: %v", err)
			} else {
				session := uuid.NewString()
				logger.Info("Recording session %s", session)
				opts.Records = store.NewRecorder(js, session)
			}
		}
	}

	ctrl := controller.New(opts)
	return tui.Run(cfg, ctrl)
}
