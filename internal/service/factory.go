package service

import (
	"github.com/pixelpetals-dev/discount-editor/internal/config"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     *postgres.DB

	// Repositories
	PlanRepo plan.Repository

	// External collaborators
	Catalog   catalog.Service
	OrderSink order.Sink
}

// NewServiceParams assembles the shared dependency bundle for fx
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	planRepo plan.Repository,
	catalogSvc catalog.Service,
	orderSink order.Sink,
) ServiceParams {
	return ServiceParams{
		Logger:    logger,
		Config:    config,
		DB:        db,
		PlanRepo:  planRepo,
		Catalog:   catalogSvc,
		OrderSink: orderSink,
	}
}
