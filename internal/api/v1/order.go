package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelpetals-dev/discount-editor/internal/api/dto"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/service"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// CreateOrder resolves the customer's discount and submits a priced order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if req.Shop != "" {
		ctx = types.SetShopID(ctx, req.Shop)
	}

	result, err := h.service.CreateOrder(ctx, serviceReq)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreateOrderResponse(result))
}
