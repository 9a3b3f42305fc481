package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/httpclient"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

type draftOrderLineItem struct {
	VariantID       int64               `json:"variant_id"`
	Quantity        int                 `json:"quantity"`
	AppliedDiscount *draftOrderDiscount `json:"applied_discount,omitempty"`
}

type draftOrderDiscount struct {
	ValueType string `json:"value_type"`
	Value     string `json:"value"`
	Title     string `json:"title"`
}

type draftOrderPayload struct {
	DraftOrder struct {
		Note      string               `json:"note,omitempty"`
		LineItems []draftOrderLineItem `json:"line_items"`
		Customer  struct {
			ID int64 `json:"id"`
		} `json:"customer"`
	} `json:"draft_order"`
}

type draftOrderEnvelope struct {
	DraftOrder struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		InvoiceURL string `json:"invoice_url"`
	} `json:"draft_order"`
}

type draftOrderErrors struct {
	Errors map[string][]string `json:"errors"`
}

// CreateDraftOrder submits the priced line set in a single call. The request's
// idempotency key is forwarded as a header so the sink can deduplicate
// replays. Validation rejections come back verbatim as *order.ValidationError.
func (c *Client) CreateDraftOrder(ctx context.Context, req *order.CreateDraftOrderRequest) (*order.DraftOrder, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	payload := draftOrderPayload{}
	payload.DraftOrder.Note = req.Reference

	customerBare, _ := types.BareID(req.CustomerID)
	customerID, err := strconv.ParseInt(customerBare, 10, 64)
	if err != nil {
		return nil, ierr.NewError("customer identifier is not numeric").
			WithHint("A numeric customer ID is required for order creation").
			WithReportableDetails(map[string]any{"customer_id": req.CustomerID}).
			Mark(ierr.ErrValidation)
	}
	payload.DraftOrder.Customer.ID = customerID

	for _, line := range req.Lines {
		item := draftOrderLineItem{
			Quantity: line.Quantity,
		}
		bare, _ := types.BareID(line.VariantID)
		variantID, err := strconv.ParseInt(bare, 10, 64)
		if err != nil {
			return nil, ierr.NewError("variant identifier is not numeric").
				WithHint("A numeric variant ID is required for order creation").
				WithReportableDetails(map[string]any{"variant_id": line.VariantID}).
				Mark(ierr.ErrValidation)
		}
		item.VariantID = variantID
		if line.AppliedDiscount != nil {
			item.AppliedDiscount = &draftOrderDiscount{
				ValueType: "percentage",
				Value:     line.AppliedDiscount.Percent.String(),
				Title:     line.AppliedDiscount.Title,
			}
		}
		payload.DraftOrder.LineItems = append(payload.DraftOrder.LineItems, item)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	headers := c.headers()
	if req.IdempotencyKey != "" {
		headers["Idempotency-Key"] = req.IdempotencyKey
	}

	c.logger.Infow("submitting draft order",
		"customer_id", req.CustomerID,
		"lines", len(req.Lines),
		"idempotency_key", req.IdempotencyKey,
	)

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.cfg.BaseURL() + "/draft_orders.json",
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		if httpErr, isHTTP := httpclient.IsHTTPError(err); isHTTP && httpErr.StatusCode == http.StatusUnprocessableEntity {
			return nil, sinkValidationError(httpErr.Response)
		}
		return nil, err
	}

	var env draftOrderEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected response from the order sink").
			Mark(ierr.ErrHTTPClient)
	}

	return &order.DraftOrder{
		ID:         fmt.Sprintf("%d", env.DraftOrder.ID),
		Name:       env.DraftOrder.Name,
		InvoiceURL: env.DraftOrder.InvoiceURL,
	}, nil
}

func sinkValidationError(body []byte) error {
	var parsed draftOrderErrors
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return &order.ValidationError{Messages: []string{string(body)}}
	}

	var messages []string
	for field, fieldErrors := range parsed.Errors {
		for _, msg := range fieldErrors {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return &order.ValidationError{Messages: messages}
}
