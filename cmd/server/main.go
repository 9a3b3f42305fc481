package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pixelpetals-dev/discount-editor/internal/api"
	v1 "github.com/pixelpetals-dev/discount-editor/internal/api/v1"
	"github.com/pixelpetals-dev/discount-editor/internal/config"
	"github.com/pixelpetals-dev/discount-editor/internal/httpclient"
	"github.com/pixelpetals-dev/discount-editor/internal/integration/shopify"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/postgres"
	"github.com/pixelpetals-dev/discount-editor/internal/repository"
	"github.com/pixelpetals-dev/discount-editor/internal/service"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/pixelpetals-dev/discount-editor/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC

	// Local development convenience; missing .env is fine
	_ = godotenv.Load()
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// HTTP Client
			provideHTTPClient,

			// Upstream clients
			shopify.NewClient,
			shopify.AsCatalogService,
			shopify.AsOrderSink,

			// Repositories
			repository.NewPlanRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewSegmentMatcher,
			provideSelectionStrategy,
			provideSelector,
			service.NewDiscountEngine,

			service.NewOfferService,
			service.NewOrderService,
			service.NewPlanService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHTTPClient(cfg *config.Configuration) httpclient.Client {
	return httpclient.NewClientWithConfig(httpclient.ClientConfig{
		Timeout: cfg.Shopify.Timeout(),
	})
}

func provideSelectionStrategy() service.SelectionStrategy {
	return service.HighestRateStrategy{}
}

func provideSelector(params service.ServiceParams, strategy service.SelectionStrategy) service.PlanSelector {
	return service.NewPlanSelector(params.PlanRepo, strategy, params.Logger)
}

func provideHandlers(
	logger *logger.Logger,
	offerService service.OfferService,
	orderService service.OrderService,
	planService service.PlanService,
) api.Handlers {
	return api.NewHandlers(
		v1.NewHealthHandler(logger),
		v1.NewOfferHandler(offerService, logger),
		v1.NewOrderHandler(orderService, logger),
		v1.NewPlanHandler(planService, logger),
	)
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
