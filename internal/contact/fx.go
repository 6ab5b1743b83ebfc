package contact

import (
	"github.com/cremaciondirecta/checkout/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(service.New),
)
