package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelpetals-dev/discount-editor/internal/api/dto"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/service"
)

type OfferHandler struct {
	service service.OfferService
	log     *logger.Logger
}

func NewOfferHandler(service service.OfferService, log *logger.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log,
	}
}

// ResolveOffer resolves the discount offer for a customer
func (h *OfferHandler) ResolveOffer(c *gin.Context) {
	var req dto.ResolveOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	res, err := h.service.ResolveOffer(c.Request.Context(), req.Customer.ID, req.Customer.Tags)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResolveOfferResponse(res))
}
