package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Initiate creates a hosted checkout session for the authenticated
	// user and returns the embeddable client secret.
	Initiate(ctx context.Context, token string, req InitiateRequest) (InitiateResponse, error)

	// ResolveCompletion fetches the completed session, derives the billing
	// record and persists it exactly once.
	ResolveCompletion(ctx context.Context, token string, sessionID string) (ResolveResponse, error)
}

// Processor is the payment-processor surface the checkout service depends on.
type Processor interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (CreatedSession, error)
	Session(ctx context.Context, id string) (Session, error)
	LineItems(ctx context.Context, sessionID string) ([]LineItem, error)
	Product(ctx context.Context, id string) (Product, error)
}

var (
	ErrInvalidRequest = errors.New("invalid_request")

	// ErrPaymentIncomplete: the session exists but was not paid. Expected
	// transient state, not a bug.
	ErrPaymentIncomplete = errors.New("payment_incomplete")

	// ErrMalformedSession: the processor's session lacks the shape the
	// derivation requires. Retrying reproduces the same data, so never
	// retried.
	ErrMalformedSession = errors.New("malformed_session")

	// ErrProcessor: the processor rejected a request or returned an
	// unusable success (e.g. no client secret).
	ErrProcessor = errors.New("processor_error")

	// ErrProcessorUnavailable: connectivity-level failure, safe to retry
	// for reads.
	ErrProcessorUnavailable = errors.New("processor_unavailable")
)
