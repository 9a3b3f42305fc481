package service

import (
	"context"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SelectionStrategy picks one plan out of the candidates, or nil when none
// qualifies. Swapping the strategy (e.g. for a per-collection merge across
// plans) must not touch the rest of the pipeline.
type SelectionStrategy interface {
	Select(plans []*plan.DiscountPlan) *plan.DiscountPlan
}

// HighestRateStrategy selects the plan whose best rule percentage is strictly
// greatest; ties keep the first plan in fetch order. A plan with no positive
// rule is never selected, even when it is the only candidate.
type HighestRateStrategy struct{}

func (HighestRateStrategy) Select(plans []*plan.DiscountPlan) *plan.DiscountPlan {
	var best *plan.DiscountPlan
	bestMax := decimal.Zero

	for _, p := range plans {
		planMax := p.MaxPercentOff()
		if planMax.GreaterThan(bestMax) {
			best = p
			bestMax = planMax
		}
	}

	return best
}

// PlanSelector resolves the single applicable plan for a matched segment.
type PlanSelector interface {
	SelectForSegment(ctx context.Context, segment *catalog.Segment) (*plan.DiscountPlan, error)
}

type planSelector struct {
	repo     plan.Repository
	strategy SelectionStrategy
	logger   *logger.Logger
}

func NewPlanSelector(repo plan.Repository, strategy SelectionStrategy, logger *logger.Logger) PlanSelector {
	if strategy == nil {
		strategy = HighestRateStrategy{}
	}
	return &planSelector{
		repo:     repo,
		strategy: strategy,
		logger:   logger,
	}
}

// SelectForSegment queries the plan store for every key encoding a plan might
// have stored for this segment. Target keys historically carry either the
// segment name or its identifier (prefixed or bare); the candidate set covers
// all three until writes are fully normalized to the name.
func (s *planSelector) SelectForSegment(ctx context.Context, segment *catalog.Segment) (*plan.DiscountPlan, error) {
	if segment == nil {
		return nil, nil
	}

	keys := lo.Uniq([]string{
		segment.Name,
		types.GID(types.GIDKindSegment, segment.ID),
		segment.ID,
	})

	plans, err := s.repo.GetByTarget(ctx, types.TargetTypeSegment, keys)
	if err != nil {
		return nil, err
	}

	selected := s.strategy.Select(plans)
	if selected == nil {
		s.logger.Debugw("no applicable plan for segment",
			"segment_name", segment.Name,
			"candidates", len(plans),
		)
		return nil, nil
	}

	s.logger.Debugw("plan selected",
		"plan_id", selected.ID,
		"plan_name", selected.Name,
		"candidates", len(plans),
	)
	return selected, nil
}
