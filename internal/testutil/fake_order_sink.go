package testutil

import (
	"context"
	"sync"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// FakeOrderSink implements order.Sink and records every submission.
type FakeOrderSink struct {
	mu sync.Mutex

	Submissions []*order.CreateDraftOrderRequest
	Err         error
}

func NewFakeOrderSink() *FakeOrderSink {
	return &FakeOrderSink{}
}

func (f *FakeOrderSink) CreateDraftOrder(ctx context.Context, req *order.CreateDraftOrderRequest) (*order.DraftOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	f.Submissions = append(f.Submissions, req)
	return &order.DraftOrder{
		ID:         types.GenerateUUID(),
		Name:       req.Reference,
		InvoiceURL: "https://sink.example.com/invoice/" + req.Reference,
	}, nil
}

func (f *FakeOrderSink) LastSubmission() *order.CreateDraftOrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Submissions) == 0 {
		return nil
	}
	return f.Submissions[len(f.Submissions)-1]
}
