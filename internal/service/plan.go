package service

import (
	"context"
	"strings"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/shopspring/decimal"
)

// PlanService owns the authoring surface for discount plans.
type PlanService interface {
	CreatePlan(ctx context.Context, p *plan.DiscountPlan) (*plan.DiscountPlan, error)
	GetPlan(ctx context.Context, id string) (*plan.DiscountPlan, error)
	ListPlans(ctx context.Context) ([]*plan.DiscountPlan, error)
	UpdatePlan(ctx context.Context, p *plan.DiscountPlan) (*plan.DiscountPlan, error)
	DeletePlan(ctx context.Context, id string) error
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, p *plan.DiscountPlan) (*plan.DiscountPlan, error) {
	if err := s.validatePlan(p); err != nil {
		return nil, err
	}

	s.normalizeTargetKey(ctx, p)

	exists, err := s.PlanRepo.ExistsForTarget(ctx, p.TargetType, p.TargetKey, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ierr.NewError("a plan already targets this key").
			WithHint("Each segment or customer can have at most one discount plan").
			WithReportableDetails(map[string]any{
				"target_type": p.TargetType,
				"target_key":  p.TargetKey,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	p.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN)
	p.BaseModel = types.GetDefaultBaseModel(ctx)
	for _, r := range p.Rules {
		r.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE)
		r.PlanID = p.ID
		r.CategoryID = types.GID(types.GIDKindCollection, r.CategoryID)
		r.BaseModel = types.GetDefaultBaseModel(ctx)
	}

	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("discount plan created",
		"plan_id", p.ID,
		"target_type", p.TargetType,
		"target_key", p.TargetKey,
		"rules", len(p.Rules),
	)
	return p, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*plan.DiscountPlan, error) {
	if id == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Provide the plan identifier").
			Mark(ierr.ErrValidation)
	}
	return s.PlanRepo.Get(ctx, id)
}

func (s *planService) ListPlans(ctx context.Context) ([]*plan.DiscountPlan, error) {
	return s.PlanRepo.List(ctx)
}

func (s *planService) UpdatePlan(ctx context.Context, p *plan.DiscountPlan) (*plan.DiscountPlan, error) {
	if p.ID == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Provide the plan identifier").
			Mark(ierr.ErrValidation)
	}
	if err := s.validatePlan(p); err != nil {
		return nil, err
	}

	existing, err := s.PlanRepo.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	s.normalizeTargetKey(ctx, p)

	exists, err := s.PlanRepo.ExistsForTarget(ctx, p.TargetType, p.TargetKey, p.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ierr.NewError("a plan already targets this key").
			WithHint("Each segment or customer can have at most one discount plan").
			WithReportableDetails(map[string]any{
				"target_type": p.TargetType,
				"target_key":  p.TargetKey,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	p.BaseModel = existing.BaseModel
	for _, r := range p.Rules {
		if r.ID == "" {
			r.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE)
		}
		r.PlanID = p.ID
		r.CategoryID = types.GID(types.GIDKindCollection, r.CategoryID)
		r.BaseModel = types.GetDefaultBaseModel(ctx)
	}

	if err := s.PlanRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("discount plan updated", "plan_id", p.ID, "rules", len(p.Rules))
	return p, nil
}

func (s *planService) DeletePlan(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("plan ID is required").
			WithHint("Provide the plan identifier").
			Mark(ierr.ErrValidation)
	}
	if err := s.PlanRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("discount plan deleted", "plan_id", id)
	return nil
}

func (s *planService) validatePlan(p *plan.DiscountPlan) error {
	if strings.TrimSpace(p.Name) == "" {
		return ierr.NewError("plan name is required").
			WithHint("Give the plan a non-empty name").
			Mark(ierr.ErrValidation)
	}
	if !p.TargetType.Validate() {
		return ierr.NewError("invalid target type").
			WithHint("Target type must be segment or customer").
			WithReportableDetails(map[string]any{"target_type": p.TargetType}).
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(p.TargetKey) == "" {
		return ierr.NewError("target key is required").
			WithHint("Provide the segment name or customer identifier the plan targets").
			Mark(ierr.ErrValidation)
	}

	hundred := decimal.NewFromInt(100)
	for _, r := range p.Rules {
		if strings.TrimSpace(r.CategoryID) == "" {
			return ierr.NewError("rule collection is required").
				WithHint("Every rule must name a collection").
				Mark(ierr.ErrValidation)
		}
		if !r.PercentOff.IsPositive() || r.PercentOff.GreaterThan(hundred) {
			return ierr.NewError("rule percentage out of range").
				WithHint("Percent off must be greater than 0 and at most 100").
				WithReportableDetails(map[string]any{
					"category_id": r.CategoryID,
					"percent_off": r.PercentOff,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// normalizeTargetKey rewrites a segment target to the segment's display name
// so new plans match on the cheap exact strategy. The catalog being down is
// not a reason to block authoring; the raw key is kept and the read-side
// cascade still finds it.
func (s *planService) normalizeTargetKey(ctx context.Context, p *plan.DiscountPlan) {
	if p.TargetType != types.TargetTypeSegment {
		return
	}

	segments, err := s.Catalog.ListSegments(ctx)
	if err != nil {
		s.Logger.Warnw("segment lookup failed, storing target key as given",
			"target_key", p.TargetKey,
			"error", err,
		)
		return
	}

	for _, seg := range segments {
		if strings.EqualFold(p.TargetKey, seg.Name) || types.GIDEqual(p.TargetKey, types.GID(types.GIDKindSegment, seg.ID)) {
			p.TargetKey = seg.Name
			return
		}
	}
}
