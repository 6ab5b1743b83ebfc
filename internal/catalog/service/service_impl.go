package service

import (
	"context"
	"strings"

	"github.com/cremaciondirecta/checkout/internal/catalog/domain"
	"github.com/cremaciondirecta/checkout/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Backend domain.Backend
	Catalog *config.CatalogConfigHolder
}

type Service struct {
	log     *zap.Logger
	backend domain.Backend
	catalog *config.CatalogConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("catalog.service"),
		backend: p.Backend,
		catalog: p.Catalog,
	}
}

func (s *Service) Plans(ctx context.Context, country string) ([]domain.Plan, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, domain.ErrInvalidCountry
	}

	collection := s.catalog.Current().CollectionFor(country)
	plans, err := s.backend.Pricing(ctx, collection)
	if err != nil {
		return nil, err
	}

	// The pricing UI and checkout initiation both assume these hold; a
	// broken catalog fails loudly instead of selling the wrong plan.
	if _, err := domain.OneTimePlan(plans); err != nil {
		s.log.Error("catalog has no single one-time plan", zap.String("collection", collection))
		return nil, err
	}
	if _, err := domain.DefaultSubscription(plans); err != nil {
		s.log.Error("catalog has no subscription plans", zap.String("collection", collection))
		return nil, err
	}

	return plans, nil
}
