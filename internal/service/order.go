package service

import (
	"context"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// CreateOrderRequest is the service-level order construction input.
type CreateOrderRequest struct {
	CustomerID string
	Reference  string
	Lines      []CartLine
}

func (r *CreateOrderRequest) validate() error {
	if r.CustomerID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Customer id is required").
			Mark(ierr.ErrValidation)
	}
	if len(r.Lines) == 0 {
		return ierr.NewError("cart is empty").
			WithHint("At least one cart item is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OrderResult carries the full outcome of an order construction. When no
// segment or plan applies the result is still a success with Applicable=false
// and no submitted order.
type OrderResult struct {
	Applicable  bool
	SegmentName string
	PlanName    string
	Reference   string
	Lines       []LineResult
	Summary     DiscountSummary
	DraftOrder  *order.DraftOrder
}

// OrderService runs the write-side pipeline: resolve the discount, price the
// cart and submit the priced lines to the order sink.
type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResult, error)
}

type orderService struct {
	ServiceParams
	matcher  SegmentMatcher
	selector PlanSelector
	engine   DiscountEngine
}

func NewOrderService(params ServiceParams, matcher SegmentMatcher, selector PlanSelector, engine DiscountEngine) OrderService {
	return &orderService{
		ServiceParams: params,
		matcher:       matcher,
		selector:      selector,
		engine:        engine,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResult, error) {
	log := s.Logger.With(
		"customer_id", req.CustomerID,
		"request_id", types.GetRequestID(ctx),
	)
	s.transition(log, types.ResolutionStateReceived)

	if err := req.validate(); err != nil {
		s.transition(log, types.ResolutionStateFailed)
		return nil, err
	}
	s.transition(log, types.ResolutionStateValidated)

	result := &OrderResult{
		Reference: req.Reference,
	}

	customer, err := s.Catalog.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		s.transition(log, types.ResolutionStateFailed)
		return nil, err
	}

	// Unlike the offer path, a broken segment catalog fails the order: the
	// shopper was promised a price and silently dropping the discount here
	// would charge them more than quoted.
	segments, err := s.Catalog.ListSegments(ctx)
	if err != nil {
		s.transition(log, types.ResolutionStateFailed)
		return nil, err
	}

	segment := s.matcher.Match(customer.Tags, segments)
	if segment == nil {
		s.transition(log, types.ResolutionStateNoMatch)
		result.Summary = Summarize(s.undiscounted(req.Lines))
		return result, nil
	}
	result.SegmentName = segment.Name
	s.transition(log, types.ResolutionStateSegmentMatched)

	selected, err := s.selector.SelectForSegment(ctx, segment)
	if err != nil {
		s.transition(log, types.ResolutionStateFailed)
		return nil, err
	}
	if selected == nil {
		s.transition(log, types.ResolutionStateNoPlan)
		result.Summary = Summarize(s.undiscounted(req.Lines))
		return result, nil
	}
	result.Applicable = true
	result.PlanName = selected.Name
	s.transition(log, types.ResolutionStatePlanSelected)

	ordered := OrderResolved(ResolveRules(selected.Rules))
	result.Lines = s.engine.Compute(ctx, req.Lines, ordered)
	result.Summary = Summarize(result.Lines)
	s.transition(log, types.ResolutionStateDiscountsComputed)

	// A reference is minted only when an order is actually submitted; the
	// terminal no-match and no-plan paths must not hand out a reference that
	// points at nothing.
	if result.Reference == "" {
		result.Reference = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_DRAFT_ORDER)
	}

	draft, err := s.OrderSink.CreateDraftOrder(ctx, &order.CreateDraftOrderRequest{
		CustomerID:     req.CustomerID,
		Lines:          s.sinkLines(result.Lines, selected.Name),
		Reference:      result.Reference,
		IdempotencyKey: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_IDEMPOTENCY_KEY),
	})
	if err != nil {
		s.transition(log, types.ResolutionStateFailed)
		return nil, err
	}
	result.DraftOrder = draft
	s.transition(log, types.ResolutionStateOrderSubmitted)

	s.transition(log, types.ResolutionStateSucceeded)
	return result, nil
}

// sinkLines converts priced results into the sink's line shape. The discount
// title carries the plan name so the materialized order is self-describing.
func (s *orderService) sinkLines(results []LineResult, planName string) []order.DraftOrderLine {
	lines := make([]order.DraftOrderLine, 0, len(results))
	for _, r := range results {
		line := order.DraftOrderLine{
			VariantID: r.Line.VariantID,
			Quantity:  r.Line.Quantity,
		}
		if r.Match != nil {
			line.AppliedDiscount = &order.AppliedDiscount{
				Percent: r.Match.PercentOff,
				Title:   planName,
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *orderService) undiscounted(lines []CartLine) []LineResult {
	results := make([]LineResult, 0, len(lines))
	for _, l := range lines {
		results = append(results, LineResult{Line: l})
	}
	return results
}

func (s *orderService) transition(log *logger.Logger, state types.ResolutionState) {
	log.Infow("order pipeline transition", "state", state)
}
