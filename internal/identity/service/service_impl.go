package service

import (
	"context"
	"strings"

	"github.com/cremaciondirecta/checkout/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Backend domain.Backend
}

type Service struct {
	log     *zap.Logger
	backend domain.Backend
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("identity.service"),
		backend: p.Backend,
	}
}

func (s *Service) Resolve(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}

	me, err := s.backend.Me(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	if me.ID == 0 {
		return domain.User{}, domain.ErrUnauthenticated
	}

	// The full record carries the customer relation; the me projection may
	// not.
	full, err := s.backend.User(ctx, me.ID)
	if err != nil {
		return domain.User{}, err
	}
	if full.StripeCustomer == nil || full.StripeCustomer.ID == 0 {
		s.log.Warn("user has no customer link", zap.Int("user_id", me.ID))
		return domain.User{}, domain.ErrCustomerNotLinked
	}

	return full, nil
}

func (s *Service) Profile(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return s.backend.Me(ctx, token)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.Auth, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return domain.Auth{}, domain.ErrInvalidRequest
	}
	return s.backend.Login(ctx, identifier, req.Password)
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.Auth, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || !strings.Contains(email, "@") || username == "" || req.Password == "" {
		return domain.Auth{}, domain.ErrInvalidRequest
	}

	byEmail, err := s.backend.UsersByEmail(ctx, email)
	if err != nil {
		return domain.Auth{}, err
	}
	byUsername, err := s.backend.UsersByUsername(ctx, username)
	if err != nil {
		return domain.Auth{}, err
	}
	if len(byEmail) > 0 || len(byUsername) > 0 {
		return domain.Auth{}, domain.ErrUserExists
	}

	return s.backend.Register(ctx, email, username, req.Password)
}
