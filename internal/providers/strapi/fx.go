package strapi

import (
	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
	catalogdomain "github.com/cremaciondirecta/checkout/internal/catalog/domain"
	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.strapi",
	fx.Provide(New),
	fx.Provide(func(c *Client) identitydomain.Backend { return c }),
	fx.Provide(func(c *Client) catalogdomain.Backend { return c }),
	fx.Provide(func(c *Client) billingdomain.Store { return c }),
)
