package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cremaciondirecta/checkout/internal/billing"
	"github.com/cremaciondirecta/checkout/internal/catalog"
	catalogdomain "github.com/cremaciondirecta/checkout/internal/catalog/domain"
	"github.com/cremaciondirecta/checkout/internal/checkout"
	checkoutdomain "github.com/cremaciondirecta/checkout/internal/checkout/domain"
	"github.com/cremaciondirecta/checkout/internal/config"
	"github.com/cremaciondirecta/checkout/internal/contact"
	contactdomain "github.com/cremaciondirecta/checkout/internal/contact/domain"
	"github.com/cremaciondirecta/checkout/internal/identity"
	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
	"github.com/cremaciondirecta/checkout/internal/observability"
	obsmiddleware "github.com/cremaciondirecta/checkout/internal/observability/logger"
	obsmetrics "github.com/cremaciondirecta/checkout/internal/observability/metrics"
	"github.com/cremaciondirecta/checkout/internal/providers/email"
	"github.com/cremaciondirecta/checkout/internal/providers/strapi"
	"github.com/cremaciondirecta/checkout/internal/providers/stripeapi"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	email.Module,
	strapi.Module,
	stripeapi.Module,
	identity.Module,
	billing.Module,
	checkout.Module,
	catalog.Module,
	contact.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	identitySvc identitydomain.Service
	checkoutSvc checkoutdomain.Service
	catalogSvc  catalogdomain.Service
	contactSvc  contactdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	IdentitySvc identitydomain.Service
	CheckoutSvc checkoutdomain.Service
	CatalogSvc  catalogdomain.Service
	ContactSvc  contactdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		identitySvc: p.IdentitySvc,
		checkoutSvc: p.CheckoutSvc,
		catalogSvc:  p.CatalogSvc,
		contactSvc:  p.ContactSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.CountryCookie())

	// -------- Auth --------
	api.POST("/login", s.Login)
	api.POST("/register", s.Register)
	api.POST("/logout", s.Logout)
	api.GET("/check-auth", s.CheckAuth)
	api.GET("/user-profile", s.UserProfile)

	// -------- Checkout --------
	api.POST("/stripe/create-checkout-session", s.CreateCheckoutSession)
	api.GET("/stripe/session", s.ResolveCheckoutSession)

	// -------- Pricing --------
	api.GET("/pricing/:country", s.GetPricing)

	// -------- Contact --------
	api.POST("/contact", s.Contact)
}
