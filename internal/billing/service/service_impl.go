package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cremaciondirecta/checkout/internal/billing/domain"
	"github.com/cremaciondirecta/checkout/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Store   domain.Store
	Metrics *metrics.CheckoutMetrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	store   domain.Store
	metrics *metrics.CheckoutMetrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("billing.service"),
		store:   p.Store,
		metrics: p.Metrics,
	}
}

// Persist treats session_id as a natural key. The success page can be
// refreshed and the redirect can arrive twice, possibly on different
// instances, so the check runs against the store rather than any in-process
// state, and a lost race falls back to the store's uniqueness constraint.
func (s *Service) Persist(ctx context.Context, record domain.BillingRecord) (int, error) {
	if err := validate(record); err != nil {
		return 0, err
	}

	existing, err := s.store.SubscriptionBySessionID(ctx, record.SessionID)
	if err != nil {
		return 0, s.persistenceFailure(record.SessionID, err)
	}
	if existing != nil {
		s.log.Info("billing record already persisted",
			zap.String("session_id", record.SessionID),
			zap.Int("record_id", existing.ID),
		)
		return existing.ID, nil
	}

	id, err := s.store.CreateSubscription(ctx, record)
	if err == nil {
		s.log.Info("billing record persisted",
			zap.String("session_id", record.SessionID),
			zap.Int("record_id", id),
		)
		return id, nil
	}

	if isDuplicate(err) {
		// Concurrent resolution won the write; read back its row.
		existing, readErr := s.store.SubscriptionBySessionID(ctx, record.SessionID)
		if readErr == nil && existing != nil {
			return existing.ID, nil
		}
		if readErr != nil {
			err = readErr
		}
	}

	return 0, s.persistenceFailure(record.SessionID, err)
}

func (s *Service) persistenceFailure(sessionID string, err error) error {
	s.log.Error("billing record write failed after capture",
		zap.String("session_id", sessionID),
		zap.Error(err),
	)
	s.metrics.PersistenceFailed()
	return &domain.PersistenceError{SessionID: sessionID, Err: err}
}

func isDuplicate(err error) bool {
	return errors.Is(err, domain.ErrDuplicateSession)
}

func validate(record domain.BillingRecord) error {
	switch {
	case strings.TrimSpace(record.SessionID) == "",
		strings.TrimSpace(record.PlanName) == "",
		record.UserID == 0,
		record.CustomerID == 0,
		record.AmountOfCycles < 1,
		record.AmountPaidCycles < 0,
		record.AmountPaidCycles > record.AmountOfCycles,
		record.AmountDue < 0:
		return domain.ErrInvalidRecord
	default:
		return nil
	}
}
