package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
	"github.com/cremaciondirecta/checkout/internal/checkout/domain"
	"github.com/cremaciondirecta/checkout/internal/config"
	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
	"github.com/cremaciondirecta/checkout/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	Identity  identitydomain.Service
	Processor domain.Processor
	Billing   billingdomain.Service
	Metrics   *metrics.CheckoutMetrics `optional:"true"`
}

type Service struct {
	cfg       config.Config
	log       *zap.Logger
	identity  identitydomain.Service
	processor domain.Processor
	billing   billingdomain.Service
	metrics   *metrics.CheckoutMetrics
}

func New(p Params) domain.Service {
	return &Service{
		cfg:       p.Cfg,
		log:       p.Log.Named("checkout.service"),
		identity:  p.Identity,
		processor: p.Processor,
		billing:   p.Billing,
		metrics:   p.Metrics,
	}
}

func (s *Service) Initiate(ctx context.Context, token string, req domain.InitiateRequest) (domain.InitiateResponse, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return domain.InitiateResponse{}, err
	}

	priceID := strings.TrimSpace(req.PriceID)
	if priceID == "" {
		return domain.InitiateResponse{}, fmt.Errorf("%w: price id is required", domain.ErrInvalidRequest)
	}

	created, err := s.processor.CreateSession(ctx, domain.CreateSessionParams{
		CustomerID: user.StripeCustomer.StripeCustomerID,
		PriceID:    priceID,
		Mode:       domain.NormalizeMode(req.Mode),
		ReturnURL:  s.cfg.BaseURL + "/subscription/success?session_id={CHECKOUT_SESSION_ID}",
	})
	if err != nil {
		// Session creation is never retried here: a retry would mint a
		// second session. The user re-initiates deliberately.
		s.log.Error("checkout session creation failed", zap.Error(err))
		return domain.InitiateResponse{}, err
	}
	if created.ClientSecret == "" {
		return domain.InitiateResponse{}, fmt.Errorf("%w: session created without client secret", domain.ErrProcessor)
	}

	s.metrics.SessionCreated()
	s.log.Info("checkout session created",
		zap.String("session_id", created.ID),
		zap.Int("user_id", user.ID),
	)
	return domain.InitiateResponse{ClientSecret: created.ClientSecret}, nil
}

func (s *Service) ResolveCompletion(ctx context.Context, token string, sessionID string) (domain.ResolveResponse, error) {
	resp, err := s.resolveCompletion(ctx, token, sessionID)
	s.metrics.CompletionResolved(completionResult(err))
	return resp, err
}

func (s *Service) resolveCompletion(ctx context.Context, token string, sessionID string) (domain.ResolveResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.ResolveResponse{}, fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}

	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	session, err := s.processor.Session(ctx, sessionID)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	if session.PaymentStatus != domain.PaymentStatusPaid {
		s.log.Warn("session not paid",
			zap.String("session_id", sessionID),
			zap.String("payment_status", session.PaymentStatus),
		)
		return domain.ResolveResponse{}, domain.ErrPaymentIncomplete
	}
	if session.AmountTotal == nil {
		return domain.ResolveResponse{}, fmt.Errorf("%w: amount total missing", domain.ErrMalformedSession)
	}

	completed, err := s.unify(ctx, session)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	product, err := s.processor.Product(ctx, completed.ProductID)
	if err != nil {
		return domain.ResolveResponse{}, err
	}
	if strings.TrimSpace(product.Name) == "" {
		return domain.ResolveResponse{}, fmt.Errorf("%w: product name missing", domain.ErrMalformedSession)
	}

	record, err := domain.BuildBillingRecord(completed, product.Name, user.ID, user.StripeCustomer.ID)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	id, err := s.billing.Persist(ctx, record)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	s.log.Info("checkout completion resolved",
		zap.String("session_id", sessionID),
		zap.String("kind", string(completed.Kind)),
		zap.Int("record_id", id),
	)
	return domain.ResolveResponse{Message: "subscription recorded", BillingRecordID: id}, nil
}

// unify collapses the processor's two session shapes into the tagged variant
// the derivation consumes.
func (s *Service) unify(ctx context.Context, session domain.Session) (domain.CompletedCheckout, error) {
	if session.Mode == domain.ModeSubscription {
		sub := session.Subscription
		if sub == nil {
			return domain.CompletedCheckout{}, fmt.Errorf("%w: subscription missing from session", domain.ErrMalformedSession)
		}
		if sub.ProductID == "" {
			return domain.CompletedCheckout{}, fmt.Errorf("%w: product missing from subscription price", domain.ErrMalformedSession)
		}
		return domain.CompletedCheckout{
			Kind:        domain.KindSubscription,
			SessionID:   session.ID,
			ProductID:   sub.ProductID,
			AmountTotal: *session.AmountTotal,
			PeriodStart: sub.CurrentPeriodStart,
			PeriodEnd:   sub.CurrentPeriodEnd,
		}, nil
	}

	items, err := s.processor.LineItems(ctx, session.ID)
	if err != nil {
		return domain.CompletedCheckout{}, err
	}
	if len(items) == 0 {
		return domain.CompletedCheckout{}, fmt.Errorf("%w: no line items for one-time session", domain.ErrMalformedSession)
	}
	if items[0].ProductID == "" {
		return domain.CompletedCheckout{}, fmt.Errorf("%w: product missing from line item price", domain.ErrMalformedSession)
	}
	return domain.CompletedCheckout{
		Kind:        domain.KindOneTime,
		SessionID:   session.ID,
		ProductID:   items[0].ProductID,
		AmountTotal: *session.AmountTotal,
		Created:     session.Created,
	}, nil
}

func completionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrPaymentIncomplete):
		return "payment_incomplete"
	case errors.Is(err, domain.ErrMalformedSession):
		return "malformed_session"
	case errors.Is(err, domain.ErrProcessorUnavailable):
		return "processor_unavailable"
	case errors.Is(err, billingdomain.ErrPersistence):
		return "persistence_error"
	case errors.Is(err, identitydomain.ErrUnauthenticated),
		errors.Is(err, identitydomain.ErrCustomerNotLinked):
		return "auth_required"
	default:
		return "error"
	}
}
