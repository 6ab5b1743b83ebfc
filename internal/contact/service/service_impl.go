package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cremaciondirecta/checkout/internal/config"
	"github.com/cremaciondirecta/checkout/internal/contact/domain"
	"github.com/cremaciondirecta/checkout/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Email email.Provider
}

type Service struct {
	cfg   config.Config
	log   *zap.Logger
	email email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		log:   p.Log.Named("contact.service"),
		email: p.Email,
	}
}

func (s *Service) Relay(ctx context.Context, req domain.ContactRequest) error {
	userEmail := strings.TrimSpace(req.UserEmail)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if userEmail == "" || subject == "" || message == "" {
		return domain.ErrInvalidRequest
	}

	body := fmt.Sprintf("From: %s\n\n%s", userEmail, message)
	if err := s.email.Send(ctx, []string{s.cfg.EmailDefault}, "Proveedor CremacionDirecta: "+subject, body); err != nil {
		s.log.Error("contact relay failed", zap.Error(err))
		return domain.ErrDeliveryFailed
	}
	return nil
}
