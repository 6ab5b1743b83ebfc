package strapi

import (
	"context"
	"net/http"

	catalogdomain "github.com/cremaciondirecta/checkout/internal/catalog/domain"
)

type pricingListEnvelope struct {
	Data []struct {
		ID         int               `json:"id"`
		Attributes pricingAttributes `json:"attributes"`
	} `json:"data"`
}

type pricingAttributes struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Recurring     bool     `json:"recurring"`
	StripePriceID string   `json:"stripe_price_id"`
	DiscountPrice *float64 `json:"discount_price"`
	Cycles        *int     `json:"cycles"`
}

func (c *Client) Pricing(ctx context.Context, collection string) ([]catalogdomain.Plan, error) {
	var envelope pricingListEnvelope
	if err := c.do(ctx, http.MethodGet, collection, "", nil, &envelope); err != nil {
		if isTransport(err) {
			return nil, catalogdomain.ErrCatalogUnavailable
		}
		if isStatus(err, http.StatusNotFound) {
			return nil, catalogdomain.ErrInvalidCountry
		}
		return nil, err
	}

	plans := make([]catalogdomain.Plan, 0, len(envelope.Data))
	for _, entry := range envelope.Data {
		plans = append(plans, catalogdomain.Plan{
			ID:            entry.ID,
			Name:          entry.Attributes.Name,
			Price:         entry.Attributes.Price,
			Currency:      entry.Attributes.Currency,
			Recurring:     entry.Attributes.Recurring,
			PriceRef:      entry.Attributes.StripePriceID,
			DiscountPrice: entry.Attributes.DiscountPrice,
			Cycles:        entry.Attributes.Cycles,
		})
	}
	return plans, nil
}
