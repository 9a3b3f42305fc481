package dto

import (
	"github.com/pixelpetals-dev/discount-editor/internal/service"
	"github.com/pixelpetals-dev/discount-editor/internal/validator"
	"github.com/shopspring/decimal"
)

// CartItemRequest is one storefront cart line
type CartItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	VariantID string  `json:"variantId" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Title     string  `json:"title"`
}

// CreateOrderRequest is the order construction request payload
type CreateOrderRequest struct {
	Shop           string            `json:"shop"`
	CustomerID     string            `json:"customerId" validate:"required"`
	CartItems      []CartItemRequest `json:"cartItems" validate:"required,min=1,dive"`
	OrderReference string            `json:"orderReference"`
}

func (r *CreateOrderRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return nil
}

// ToCartLines converts the wire cart into the engine's decimal form.
func (r *CreateOrderRequest) ToCartLines() []service.CartLine {
	lines := make([]service.CartLine, 0, len(r.CartItems))
	for _, item := range r.CartItems {
		lines = append(lines, service.CartLine{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Price:     decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
			Title:     item.Title,
		})
	}
	return lines
}

// ToServiceRequest converts the payload into the service request.
func (r *CreateOrderRequest) ToServiceRequest() (*service.CreateOrderRequest, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &service.CreateOrderRequest{
		CustomerID: r.CustomerID,
		Reference:  r.OrderReference,
		Lines:      r.ToCartLines(),
	}, nil
}

// ApplicableDiscountResponse is one discounted line in the summary
type ApplicableDiscountResponse struct {
	ProductID       string  `json:"productId"`
	CollectionID    string  `json:"collectionId"`
	PercentOff      float64 `json:"percentOff"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
	DiscountAmount  float64 `json:"discountAmount"`
}

// DiscountSummaryResponse aggregates the cart-level discount outcome
type DiscountSummaryResponse struct {
	Segment             string                       `json:"segment"`
	PlanName            string                       `json:"planName"`
	TotalOriginalPrice  float64                      `json:"totalOriginalPrice"`
	TotalDiscountAmount float64                      `json:"totalDiscountAmount"`
	SavingsPercentage   float64                      `json:"savingsPercentage"`
	ApplicableDiscounts []ApplicableDiscountResponse `json:"applicableDiscounts"`
}

// CreateOrderResponse is the order construction response envelope
type CreateOrderResponse struct {
	Success            bool                     `json:"success"`
	DiscountApplicable bool                     `json:"discountApplicable"`
	OrderReference     string                   `json:"orderReference,omitempty"`
	InvoiceURL         string                   `json:"invoiceUrl,omitempty"`
	DiscountSummary    *DiscountSummaryResponse `json:"discountSummary,omitempty"`
}

// NewCreateOrderResponse maps a service result onto the wire shape. All
// amounts round to two decimals here, at the presentation boundary.
func NewCreateOrderResponse(result *service.OrderResult) *CreateOrderResponse {
	resp := &CreateOrderResponse{
		Success:            true,
		DiscountApplicable: result.Applicable,
		OrderReference:     result.Reference,
	}
	if result.DraftOrder != nil {
		resp.InvoiceURL = result.DraftOrder.InvoiceURL
	}
	if !result.Applicable {
		return resp
	}

	summary := &DiscountSummaryResponse{
		Segment:             result.SegmentName,
		PlanName:            result.PlanName,
		TotalOriginalPrice:  result.Summary.TotalOriginal.Round(2).InexactFloat64(),
		TotalDiscountAmount: result.Summary.TotalDiscount.Round(2).InexactFloat64(),
		SavingsPercentage:   result.Summary.SavingsPercent.Round(2).InexactFloat64(),
		ApplicableDiscounts: make([]ApplicableDiscountResponse, 0, len(result.Lines)),
	}
	for _, line := range result.Lines {
		if line.Match == nil {
			continue
		}
		summary.ApplicableDiscounts = append(summary.ApplicableDiscounts, ApplicableDiscountResponse{
			ProductID:       line.Match.ProductID,
			CollectionID:    line.Match.CollectionID,
			PercentOff:      line.Match.PercentOff.Round(2).InexactFloat64(),
			OriginalPrice:   line.Match.OriginalPrice.Round(2).InexactFloat64(),
			DiscountedPrice: line.Match.DiscountedPrice.Round(2).InexactFloat64(),
			DiscountAmount:  line.Match.DiscountAmount.Round(2).InexactFloat64(),
		})
	}
	resp.DiscountSummary = summary
	return resp
}
