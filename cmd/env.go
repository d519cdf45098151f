package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/glowlink/creator-cli/internal/outreach"
	"github.com/glowlink/creator-cli/internal/store"
)

// openStore opens the configured store backend.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	return st, nil
}

// newOrchestrator wires the outreach pipeline against a store.
func newOrchestrator(ctx context.Context, st store.Store) (*outreach.Orchestrator, error) {
	templates, err := outreach.LoadTemplates()
	if err != nil {
		return nil, err
	}
	mailer, err := outreach.NewSESMailer(ctx, cfg.Email)
	if err != nil {
		return nil, err
	}
	return outreach.NewOrchestrator(st, st, templates, mailer, cfg.Outreach, cfg.Email.SignupBaseURL), nil
}
