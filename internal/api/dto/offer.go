package dto

import (
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/service"
)

// OfferCustomer identifies the shopper whose offer is being resolved. Tags
// are optional; when absent they are fetched from the upstream catalog.
type OfferCustomer struct {
	ID   string   `json:"id" binding:"required"`
	Tags []string `json:"tags"`
}

// ResolveOfferRequest is the offer resolution request payload
type ResolveOfferRequest struct {
	Customer *OfferCustomer `json:"customer" binding:"required"`
}

func (r *ResolveOfferRequest) Validate() error {
	if r.Customer == nil {
		return ierr.NewError("customer is required").
			WithHint("Provide the customer object with an id").
			Mark(ierr.ErrValidation)
	}
	if r.Customer.ID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Provide the customer id").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OfferCollectionResponse is one discounted collection in the offer. Title
// and handle stay empty strings when metadata could not be resolved.
type OfferCollectionResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Handle     string  `json:"handle"`
	PercentOff float64 `json:"percentOff"`
}

// OfferResponse is the offer body inside the resolution envelope
type OfferResponse struct {
	DiscountApplicable  bool                      `json:"discountApplicable"`
	SegmentName         string                    `json:"segmentName,omitempty"`
	PlanName            string                    `json:"planName,omitempty"`
	Collections         []OfferCollectionResponse `json:"collections,omitempty"`
	HighestDiscountRate float64                   `json:"highestDiscountRate,omitempty"`
}

// ResolveOfferResponse is the offer resolution response envelope
type ResolveOfferResponse struct {
	Success bool          `json:"success"`
	Offer   OfferResponse `json:"offer"`
}

// NewResolveOfferResponse maps a service resolution onto the wire shape.
// Rates are rounded to two decimals at this boundary only.
func NewResolveOfferResponse(res *service.OfferResolution) *ResolveOfferResponse {
	offer := OfferResponse{
		DiscountApplicable: res.Applicable,
	}
	if res.Applicable {
		offer.SegmentName = res.SegmentName
		offer.PlanName = res.PlanName
		offer.HighestDiscountRate = res.HighestRate.Round(2).InexactFloat64()
		offer.Collections = make([]OfferCollectionResponse, 0, len(res.Collections))
		for _, c := range res.Collections {
			offer.Collections = append(offer.Collections, OfferCollectionResponse{
				ID:         c.ID,
				Title:      c.Title,
				Handle:     c.Handle,
				PercentOff: c.PercentOff.Round(2).InexactFloat64(),
			})
		}
	}
	return &ResolveOfferResponse{
		Success: true,
		Offer:   offer,
	}
}
