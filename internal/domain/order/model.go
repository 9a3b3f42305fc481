package order

import (
	"github.com/shopspring/decimal"
)

// AppliedDiscount is a percentage line discount attached to a draft order line.
type AppliedDiscount struct {
	Percent decimal.Decimal `json:"percent"`
	Title   string          `json:"title"`
}

// DraftOrderLine is one priced line submitted to the order sink.
type DraftOrderLine struct {
	VariantID       string           `json:"variant_id"`
	Quantity        int              `json:"quantity"`
	AppliedDiscount *AppliedDiscount `json:"applied_discount,omitempty"`
}

// DraftOrder is the sink's materialized order reference.
type DraftOrder struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InvoiceURL string `json:"invoice_url"`
}
