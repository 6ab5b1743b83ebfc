package main

import (
	"github.com/cremaciondirecta/checkout/internal/observability"
	"github.com/cremaciondirecta/checkout/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		server.Module,
	)
	app.Run()
}
