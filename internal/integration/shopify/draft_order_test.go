package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pixelpetals-dev/discount-editor/internal/config"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOrderRequest() *order.CreateDraftOrderRequest {
	return &order.CreateDraftOrderRequest{
		CustomerID: "42",
		Reference:  "DO-TEST1",
		Lines: []order.DraftOrderLine{
			{
				VariantID: "gid://shopify/ProductVariant/7",
				Quantity:  2,
				AppliedDiscount: &order.AppliedDiscount{
					Percent: decimal.NewFromInt(15),
					Title:   "VIP Perks",
				},
			},
			{VariantID: "8", Quantity: 1},
		},
		IdempotencyKey: "idem_01TEST",
	}
}

func TestCreateDraftOrder(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/draft_orders.json", testutil.MockResponse{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"draft_order":{"id":99,"name":"#D99","invoice_url":"https://demo.myshopify.com/invoice/99"}}`),
	})

	draft, err := client.CreateDraftOrder(context.Background(), draftOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, "99", draft.ID)
	assert.Equal(t, "#D99", draft.Name)
	assert.Equal(t, "https://demo.myshopify.com/invoice/99", draft.InvoiceURL)

	require.Len(t, mock.Requests, 1)
	req := mock.Requests[0]
	assert.Equal(t, "idem_01TEST", req.Headers["Idempotency-Key"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	draftOrder := payload["draft_order"].(map[string]any)
	assert.Equal(t, "DO-TEST1", draftOrder["note"])

	customer := draftOrder["customer"].(map[string]any)
	assert.Equal(t, float64(42), customer["id"])

	items := draftOrder["line_items"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, float64(7), first["variant_id"])
	assert.Equal(t, float64(2), first["quantity"])
	discount := first["applied_discount"].(map[string]any)
	assert.Equal(t, "percentage", discount["value_type"])
	assert.Equal(t, "15", discount["value"])
	assert.Equal(t, "VIP Perks", discount["title"])

	second := items[1].(map[string]any)
	assert.NotContains(t, second, "applied_discount")
}

func TestCreateDraftOrder_SinkValidationErrorIsVerbatim(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/draft_orders.json", testutil.MockResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"errors":{"line_items":["variant_id is invalid"]}}`),
	})

	_, err := client.CreateDraftOrder(context.Background(), draftOrderRequest())
	require.Error(t, err)

	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Equal(t, "line_items: variant_id is invalid", verr.Messages[0])
}

func TestCreateDraftOrder_NonNumericIdentifiers(t *testing.T) {
	client, _ := newTestClient(t)

	req := draftOrderRequest()
	req.CustomerID = "not-a-number"
	_, err := client.CreateDraftOrder(context.Background(), req)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	req = draftOrderRequest()
	req.Lines[0].VariantID = "not-a-number"
	_, err = client.CreateDraftOrder(context.Background(), req)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCreateDraftOrder_MissingCredentials(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	client := NewClient(config.GetDefaultConfig(), mock, logger.GetLogger())

	_, err := client.CreateDraftOrder(context.Background(), draftOrderRequest())
	require.Error(t, err)
	assert.True(t, ierr.IsUnauthorized(err))
	assert.Empty(t, mock.Requests)
}
