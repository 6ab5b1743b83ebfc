package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Plans returns the active catalog for a storefront country.
	Plans(ctx context.Context, country string) ([]Plan, error)
}

// Backend reads a pricing collection from the content backend, already
// normalized into plans.
type Backend interface {
	Pricing(ctx context.Context, collection string) ([]Plan, error)
}

var (
	ErrInvalidCountry     = errors.New("invalid_country")
	ErrInvalidCatalog     = errors.New("invalid_catalog")
	ErrCatalogUnavailable = errors.New("catalog_unavailable")
)

// OneTimePlan returns the catalog's single one-time representative used for
// default comparisons. Zero or several is a catalog defect, not a pick.
func OneTimePlan(plans []Plan) (Plan, error) {
	var found *Plan
	for i := range plans {
		if plans[i].Recurring {
			continue
		}
		if found != nil {
			return Plan{}, ErrInvalidCatalog
		}
		found = &plans[i]
	}
	if found == nil {
		return Plan{}, ErrInvalidCatalog
	}
	return *found, nil
}

// DefaultSubscription returns the lowest-price recurring plan.
func DefaultSubscription(plans []Plan) (Plan, error) {
	var found *Plan
	for i := range plans {
		if !plans[i].Recurring {
			continue
		}
		if found == nil || plans[i].Price < found.Price {
			found = &plans[i]
		}
	}
	if found == nil {
		return Plan{}, ErrInvalidCatalog
	}
	return *found, nil
}
