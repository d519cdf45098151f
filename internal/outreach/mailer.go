package outreach

import "context"

// Email is one outbound message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer dispatches a single email and returns the provider message id.
// Implementations own retries and rate limiting; the orchestrator treats
// any returned error as a failed dispatch.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}
