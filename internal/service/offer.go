package service

import (
	"context"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/shopspring/decimal"
)

// OfferCollection is one discounted collection in a resolved offer, enriched
// with display metadata when the catalog provides it.
type OfferCollection struct {
	ID         string
	Title      string
	Handle     string
	PercentOff decimal.Decimal
}

// OfferResolution is the outcome of the read-side pipeline for one customer.
// Applicable=false with a nil error is the normal "no discount" answer.
type OfferResolution struct {
	Applicable  bool
	SegmentName string
	PlanName    string
	Collections []OfferCollection
	HighestRate decimal.Decimal
}

// OfferService resolves the discount offer a customer is entitled to see.
// Callers that already hold the customer's tags pass them in; with an empty
// tag list the customer is fetched from the catalog instead.
type OfferService interface {
	ResolveOffer(ctx context.Context, customerID string, tags []string) (*OfferResolution, error)
}

type offerService struct {
	ServiceParams
	matcher  SegmentMatcher
	selector PlanSelector
}

func NewOfferService(params ServiceParams, matcher SegmentMatcher, selector PlanSelector) OfferService {
	return &offerService{
		ServiceParams: params,
		matcher:       matcher,
		selector:      selector,
	}
}

// ResolveOffer walks customer -> segment -> plan -> rules. The read path is
// best effort on catalog data: a failing segment listing or metadata lookup
// degrades the response instead of failing it. Unknown customers and plan
// store failures still error, since the caller cannot distinguish those from
// a genuine empty offer.
func (s *offerService) ResolveOffer(ctx context.Context, customerID string, tags []string) (*OfferResolution, error) {
	none := &OfferResolution{Applicable: false, HighestRate: decimal.Zero}

	if len(tags) == 0 {
		customer, err := s.Catalog.GetCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		tags = customer.Tags
	}

	segments, err := s.Catalog.ListSegments(ctx)
	if err != nil {
		s.Logger.Warnw("segment listing failed, resolving to no offer",
			"customer_id", customerID,
			"error", err,
		)
		return none, nil
	}

	segment := s.matcher.Match(tags, segments)
	if segment == nil {
		return none, nil
	}

	selected, err := s.selector.SelectForSegment(ctx, segment)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return none, nil
	}

	ordered := OrderResolved(ResolveRules(selected.Rules))

	resolution := &OfferResolution{
		Applicable:  true,
		SegmentName: segment.Name,
		PlanName:    selected.Name,
		Collections: make([]OfferCollection, 0, len(ordered)),
		HighestRate: decimal.Zero,
	}
	if len(ordered) > 0 {
		resolution.HighestRate = ordered[0].PercentOff
	}

	metadata := s.collectionsMetadata(ctx, ordered)
	for _, rc := range ordered {
		oc := OfferCollection{
			ID:         rc.CollectionID,
			PercentOff: rc.PercentOff,
		}
		if meta, ok := metadata[rc.CollectionID]; ok {
			oc.Title = meta.Title
			oc.Handle = meta.Handle
		}
		resolution.Collections = append(resolution.Collections, oc)
	}

	return resolution, nil
}

// collectionsMetadata resolves titles and handles in one batch. On failure
// the offer ships with bare IDs; display metadata is never worth an error.
func (s *offerService) collectionsMetadata(ctx context.Context, ordered []ResolvedCollection) map[string]*catalog.Collection {
	if len(ordered) == 0 {
		return nil
	}

	ids := make([]string, 0, len(ordered))
	for _, rc := range ordered {
		ids = append(ids, rc.CollectionID)
	}

	collections, err := s.Catalog.CollectionsMetadata(ctx, ids)
	if err != nil {
		s.Logger.Warnw("collection metadata lookup failed, returning bare IDs",
			"collection_count", len(ids),
			"error", err,
		)
		return nil
	}

	byID := make(map[string]*catalog.Collection, len(collections))
	for _, c := range collections {
		byID[c.ID] = c
		// metadata comes back with bare numeric IDs; index the canonical
		// form too so either encoding in the rule set resolves
		byID[types.GID(types.GIDKindCollection, c.ID)] = c
	}
	return byID
}
