package domain

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	// Persist writes the record exactly once per session id and returns
	// the backend identifier. Re-persisting an already recorded session
	// returns the existing identifier without creating a second row.
	Persist(ctx context.Context, record BillingRecord) (int, error)
}

// Store is the backend's subscription collection.
type Store interface {
	// CreateSubscription returns ErrDuplicateSession when the backend
	// rejects the write on the session_id uniqueness constraint.
	CreateSubscription(ctx context.Context, record BillingRecord) (int, error)
	SubscriptionBySessionID(ctx context.Context, sessionID string) (*PersistedRecord, error)
}

var (
	ErrInvalidRecord    = errors.New("invalid_record")
	ErrDuplicateSession = errors.New("duplicate_session")
	ErrPersistence      = errors.New("persistence_error")
)

// PersistenceError carries the session id so a failed write after capture can
// be reconciled by hand.
type PersistenceError struct {
	SessionID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not record purchase for session %s: %v", e.SessionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistence }
