package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cremaciondirecta/checkout/internal/billing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// -- Stubs --

type storeStub struct {
	lookups     []*domain.PersistedRecord
	lookupErr   error
	createID    int
	createErr   error
	createCalls int
	lookupCalls int
}

func (s *storeStub) SubscriptionBySessionID(ctx context.Context, sessionID string) (*domain.PersistedRecord, error) {
	s.lookupCalls++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if len(s.lookups) == 0 {
		return nil, nil
	}
	record := s.lookups[0]
	s.lookups = s.lookups[1:]
	return record, nil
}

func (s *storeStub) CreateSubscription(ctx context.Context, record domain.BillingRecord) (int, error) {
	s.createCalls++
	if s.createErr != nil {
		return 0, s.createErr
	}
	return s.createID, nil
}

func newTestService(store domain.Store) domain.Service {
	return New(Params{Log: zap.NewNop(), Store: store})
}

func validRecord() domain.BillingRecord {
	return domain.BillingRecord{
		PlanName:         "Plan 12 meses",
		AmountOfCycles:   12,
		AmountPaidCycles: 1,
		AmountPaid:       25,
		MonthlyPayment:   25,
		TotalAmountToPay: 300,
		AmountDue:        275,
		StartingDate:     "2024-01-01",
		NextPaymentDate:  "2024-02-01",
		SessionID:        "cs_test_123",
		UserID:           3,
		CustomerID:       8,
	}
}

// -- Tests --

func TestPersist_NewRecord(t *testing.T) {
	store := &storeStub{createID: 7}
	svc := newTestService(store)

	id, err := svc.Persist(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, 1, store.createCalls)
}

func TestPersist_AlreadyRecordedReturnsExisting(t *testing.T) {
	store := &storeStub{
		lookups: []*domain.PersistedRecord{{ID: 42, Record: validRecord()}},
	}
	svc := newTestService(store)

	id, err := svc.Persist(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, 0, store.createCalls, "no second row for the same session")
}

func TestPersist_LostRaceReadsBackWinner(t *testing.T) {
	// First lookup misses, the write hits the uniqueness constraint, the
	// second lookup returns the row the concurrent resolution created.
	store := &storeStub{
		lookups:   []*domain.PersistedRecord{nil, {ID: 9, Record: validRecord()}},
		createErr: fmt.Errorf("backend rejected write: %w", domain.ErrDuplicateSession),
	}
	svc := newTestService(store)

	id, err := svc.Persist(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	assert.Equal(t, 2, store.lookupCalls)
}

func TestPersist_WriteFailure(t *testing.T) {
	store := &storeStub{createErr: errors.New("backend error 500: boom")}
	svc := newTestService(store)

	_, err := svc.Persist(context.Background(), validRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	var persistErr *domain.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "cs_test_123", persistErr.SessionID)
}

func TestPersist_LookupFailure(t *testing.T) {
	store := &storeStub{lookupErr: errors.New("backend unreachable")}
	svc := newTestService(store)

	_, err := svc.Persist(context.Background(), validRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 0, store.createCalls)
}

func TestPersist_InvalidRecord(t *testing.T) {
	store := &storeStub{}
	svc := newTestService(store)

	cases := map[string]func(*domain.BillingRecord){
		"missing session id": func(r *domain.BillingRecord) { r.SessionID = "" },
		"missing plan name":  func(r *domain.BillingRecord) { r.PlanName = "" },
		"no user":            func(r *domain.BillingRecord) { r.UserID = 0 },
		"no customer":        func(r *domain.BillingRecord) { r.CustomerID = 0 },
		"zero cycles":        func(r *domain.BillingRecord) { r.AmountOfCycles = 0 },
		"negative due":       func(r *domain.BillingRecord) { r.AmountDue = -1 },
		"paid over total": func(r *domain.BillingRecord) {
			r.AmountPaidCycles = r.AmountOfCycles + 1
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			record := validRecord()
			mutate(&record)
			_, err := svc.Persist(context.Background(), record)
			assert.ErrorIs(t, err, domain.ErrInvalidRecord)
		})
	}
	assert.Equal(t, 0, store.lookupCalls)
	assert.Equal(t, 0, store.createCalls)
}
