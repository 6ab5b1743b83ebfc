package stripeapi

import (
	checkoutdomain "github.com/cremaciondirecta/checkout/internal/checkout/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.stripe",
	fx.Provide(New),
	fx.Provide(func(c *Client) checkoutdomain.Processor { return c }),
)
