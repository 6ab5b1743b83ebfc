package service

import (
	"context"
	"errors"
	"testing"

	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
	"github.com/cremaciondirecta/checkout/internal/checkout/domain"
	"github.com/cremaciondirecta/checkout/internal/config"
	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// -- Stubs --

type identityStub struct {
	user identitydomain.User
	err  error
}

func (s *identityStub) Resolve(ctx context.Context, token string) (identitydomain.User, error) {
	return s.user, s.err
}

func (s *identityStub) Profile(ctx context.Context, token string) (identitydomain.User, error) {
	return s.user, s.err
}

func (s *identityStub) Login(context.Context, identitydomain.LoginRequest) (identitydomain.Auth, error) {
	return identitydomain.Auth{}, nil
}

func (s *identityStub) Register(context.Context, identitydomain.RegisterRequest) (identitydomain.Auth, error) {
	return identitydomain.Auth{}, nil
}

type processorStub struct {
	created    domain.CreatedSession
	createErr  error
	session    domain.Session
	sessionErr error
	items      []domain.LineItem
	itemsErr   error
	product    domain.Product
	productErr error

	createParams *domain.CreateSessionParams
}

func (s *processorStub) CreateSession(ctx context.Context, p domain.CreateSessionParams) (domain.CreatedSession, error) {
	s.createParams = &p
	return s.created, s.createErr
}

func (s *processorStub) Session(ctx context.Context, id string) (domain.Session, error) {
	return s.session, s.sessionErr
}

func (s *processorStub) LineItems(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	return s.items, s.itemsErr
}

func (s *processorStub) Product(ctx context.Context, id string) (domain.Product, error) {
	return s.product, s.productErr
}

type billingStub struct {
	id      int
	err     error
	records []billingdomain.BillingRecord
}

func (s *billingStub) Persist(ctx context.Context, record billingdomain.BillingRecord) (int, error) {
	s.records = append(s.records, record)
	if s.err != nil {
		return 0, s.err
	}
	return s.id, nil
}

func linkedUser() identitydomain.User {
	return identitydomain.User{
		ID:       3,
		Username: "maria",
		Email:    "maria@example.com",
		StripeCustomer: &identitydomain.Customer{
			ID:               8,
			StripeCustomerID: "cus_abc123",
		},
	}
}

func newTestService(identity identitydomain.Service, processor domain.Processor, billing billingdomain.Service) domain.Service {
	return New(Params{
		Cfg:       config.Config{BaseURL: "https://shop.example"},
		Log:       zap.NewNop(),
		Identity:  identity,
		Processor: processor,
		Billing:   billing,
	})
}

func amount(v int64) *int64 { return &v }

// -- Initiate --

func TestInitiate_RequiresAuthentication(t *testing.T) {
	processor := &processorStub{}
	svc := newTestService(&identityStub{err: identitydomain.ErrUnauthenticated}, processor, &billingStub{})

	_, err := svc.Initiate(context.Background(), "", domain.InitiateRequest{PriceID: "price_1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, identitydomain.ErrUnauthenticated)
	assert.Nil(t, processor.createParams)
}

func TestInitiate_RequiresPrice(t *testing.T) {
	svc := newTestService(&identityStub{user: linkedUser()}, &processorStub{}, &billingStub{})

	_, err := svc.Initiate(context.Background(), "tok", domain.InitiateRequest{PriceID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestInitiate_CreatesEmbeddedSession(t *testing.T) {
	processor := &processorStub{
		created: domain.CreatedSession{ID: "cs_test_1", ClientSecret: "cs_test_1_secret"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, &billingStub{})

	resp, err := svc.Initiate(context.Background(), "tok", domain.InitiateRequest{
		PriceID: "price_1",
		Mode:    "subscription",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1_secret", resp.ClientSecret)

	require.NotNil(t, processor.createParams)
	assert.Equal(t, "cus_abc123", processor.createParams.CustomerID)
	assert.Equal(t, domain.ModeSubscription, processor.createParams.Mode)
	assert.Equal(t, "https://shop.example/subscription/success?session_id={CHECKOUT_SESSION_ID}", processor.createParams.ReturnURL)
}

func TestInitiate_DefaultsToSubscriptionMode(t *testing.T) {
	processor := &processorStub{
		created: domain.CreatedSession{ID: "cs_test_1", ClientSecret: "secret"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, &billingStub{})

	_, err := svc.Initiate(context.Background(), "tok", domain.InitiateRequest{PriceID: "price_1", Mode: "upgrade"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSubscription, processor.createParams.Mode)
}

func TestInitiate_MissingClientSecret(t *testing.T) {
	processor := &processorStub{created: domain.CreatedSession{ID: "cs_test_1"}}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, &billingStub{})

	_, err := svc.Initiate(context.Background(), "tok", domain.InitiateRequest{PriceID: "price_1"})
	assert.ErrorIs(t, err, domain.ErrProcessor)
}

// -- ResolveCompletion --

func TestResolveCompletion_UnpaidSession(t *testing.T) {
	billing := &billingStub{}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_1",
			Mode:          domain.ModeSubscription,
			PaymentStatus: "unpaid",
			AmountTotal:   amount(2500),
		},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	_, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentIncomplete)
	assert.Empty(t, billing.records, "nothing persisted for an unpaid session")
}

func TestResolveCompletion_Subscription(t *testing.T) {
	billing := &billingStub{id: 11}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_1",
			Mode:          domain.ModeSubscription,
			PaymentStatus: domain.PaymentStatusPaid,
			AmountTotal:   amount(2500),
			Subscription: &domain.SubscriptionInfo{
				PriceID:            "price_1",
				ProductID:          "prod_1",
				CurrentPeriodStart: 1704067200,
				CurrentPeriodEnd:   1706745600,
			},
		},
		product: domain.Product{ID: "prod_1", Name: "Plan 6 meses"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	resp, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, 11, resp.BillingRecordID)

	require.Len(t, billing.records, 1)
	record := billing.records[0]
	assert.Equal(t, "Plan 6 meses", record.PlanName)
	assert.Equal(t, 6, record.AmountOfCycles)
	assert.Equal(t, 25.0, record.MonthlyPayment)
	assert.Equal(t, 150.0, record.TotalAmountToPay)
	assert.Equal(t, 125.0, record.AmountDue)
	assert.Equal(t, "2024-01-01", record.StartingDate)
	assert.Equal(t, "2024-02-01", record.NextPaymentDate)
	assert.Equal(t, 3, record.UserID)
	assert.Equal(t, 8, record.CustomerID)
}

func TestResolveCompletion_OneTime(t *testing.T) {
	billing := &billingStub{id: 12}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_2",
			Mode:          domain.ModePayment,
			PaymentStatus: domain.PaymentStatusPaid,
			AmountTotal:   amount(150000),
			Created:       1719792000,
		},
		items:   []domain.LineItem{{PriceID: "price_2", ProductID: "prod_2"}},
		product: domain.Product{ID: "prod_2", Name: "Pago Unico"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	resp, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_2")
	require.NoError(t, err)
	assert.Equal(t, 12, resp.BillingRecordID)

	require.Len(t, billing.records, 1)
	record := billing.records[0]
	assert.Equal(t, 1, record.AmountOfCycles)
	assert.Equal(t, 0.0, record.AmountDue)
	assert.Equal(t, "2024-07-01", record.StartingDate)
	assert.Equal(t, record.StartingDate, record.NextPaymentDate)
}

func TestResolveCompletion_MissingSubscription(t *testing.T) {
	billing := &billingStub{}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_3",
			Mode:          domain.ModeSubscription,
			PaymentStatus: domain.PaymentStatusPaid,
			AmountTotal:   amount(2500),
		},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	_, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_3")
	assert.ErrorIs(t, err, domain.ErrMalformedSession)
	assert.Empty(t, billing.records)
}

func TestResolveCompletion_MissingAmountTotal(t *testing.T) {
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_4",
			Mode:          domain.ModeSubscription,
			PaymentStatus: domain.PaymentStatusPaid,
		},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, &billingStub{})

	_, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_4")
	assert.ErrorIs(t, err, domain.ErrMalformedSession)
}

func TestResolveCompletion_UnparseablePlanName(t *testing.T) {
	billing := &billingStub{}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_5",
			Mode:          domain.ModeSubscription,
			PaymentStatus: domain.PaymentStatusPaid,
			AmountTotal:   amount(2500),
			Subscription: &domain.SubscriptionInfo{
				ProductID:          "prod_5",
				CurrentPeriodStart: 1704067200,
				CurrentPeriodEnd:   1706745600,
			},
		},
		product: domain.Product{ID: "prod_5", Name: "Plan Premium"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	_, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_5")
	assert.ErrorIs(t, err, domain.ErrMalformedSession)
	assert.Empty(t, billing.records)
}

func TestResolveCompletion_RequiresSessionID(t *testing.T) {
	svc := newTestService(&identityStub{user: linkedUser()}, &processorStub{}, &billingStub{})

	_, err := svc.ResolveCompletion(context.Background(), "tok", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestResolveCompletion_PersistenceErrorPropagates(t *testing.T) {
	persistErr := &billingdomain.PersistenceError{SessionID: "cs_test_6", Err: errors.New("boom")}
	billing := &billingStub{err: persistErr}
	processor := &processorStub{
		session: domain.Session{
			ID:            "cs_test_6",
			Mode:          domain.ModeSubscription,
			PaymentStatus: domain.PaymentStatusPaid,
			AmountTotal:   amount(2500),
			Subscription: &domain.SubscriptionInfo{
				ProductID:          "prod_6",
				CurrentPeriodStart: 1704067200,
				CurrentPeriodEnd:   1706745600,
			},
		},
		product: domain.Product{ID: "prod_6", Name: "Plan 12 meses"},
	}
	svc := newTestService(&identityStub{user: linkedUser()}, processor, billing)

	_, err := svc.ResolveCompletion(context.Background(), "tok", "cs_test_6")
	require.Error(t, err)
	assert.ErrorIs(t, err, billingdomain.ErrPersistence)
}
