package order

import (
	"context"
	"fmt"
	"strings"
)

// CreateDraftOrderRequest carries everything the sink needs for a single
// submission. The idempotency key is forwarded so a retried request after a
// timeout cannot materialize a duplicate order.
type CreateDraftOrderRequest struct {
	CustomerID     string
	Lines          []DraftOrderLine
	Reference      string
	IdempotencyKey string
}

// Sink is the external service that materializes a priced order from
// submitted line items. The call is a write with observable side effects;
// failures surface immediately and are never retried here.
type Sink interface {
	CreateDraftOrder(ctx context.Context, req *CreateDraftOrderRequest) (*DraftOrder, error)
}

// ValidationError carries the sink's own field-level rejections (for example
// an unknown variant). The messages are surfaced verbatim to the caller.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order sink rejected the submission: %s", strings.Join(e.Messages, "; "))
}
