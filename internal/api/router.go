package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/pixelpetals-dev/discount-editor/internal/api/v1"
	"github.com/pixelpetals-dev/discount-editor/internal/rest/middleware"
)

type Handlers struct {
	Health *v1.HealthHandler
	Offer  *v1.OfferHandler
	Order  *v1.OrderHandler
	Plan   *v1.PlanHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	offer *v1.OfferHandler,
	order *v1.OrderHandler,
	plan *v1.PlanHandler,
) Handlers {
	return Handlers{
		Health: health,
		Offer:  offer,
		Order:  order,
		Plan:   plan,
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Offer resolution
	offers := router.Group("/offers")
	{
		offers.POST("/resolve", handlers.Offer.ResolveOffer)
	}

	// Order construction
	orders := router.Group("/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
	}

	// Plan authoring
	plans := router.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.GetPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
		plans.PUT("/:id", handlers.Plan.UpdatePlan)
		plans.DELETE("/:id", handlers.Plan.DeletePlan)
	}
}
