package dto

import (
	"time"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/pixelpetals-dev/discount-editor/internal/validator"
	"github.com/shopspring/decimal"
)

// PlanRuleRequest is one (collection, percent off) pair in a plan payload
type PlanRuleRequest struct {
	CategoryID string  `json:"categoryId" validate:"required"`
	PercentOff float64 `json:"percentOff" validate:"required,gt=0,lte=100"`
}

// CreatePlanRequest represents the request payload for creating a discount plan
type CreatePlanRequest struct {
	Name       string            `json:"name" validate:"required"`
	TargetType types.TargetType  `json:"targetType" validate:"required"`
	TargetKey  string            `json:"targetKey" validate:"required"`
	Rules      []PlanRuleRequest `json:"rules" validate:"required,min=1,dive"`
}

func (r *CreatePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToPlan converts the payload to the domain model
func (r *CreatePlanRequest) ToPlan() *plan.DiscountPlan {
	p := &plan.DiscountPlan{
		Name:       r.Name,
		TargetType: r.TargetType,
		TargetKey:  r.TargetKey,
	}
	for _, rule := range r.Rules {
		p.Rules = append(p.Rules, &plan.Rule{
			CategoryID: rule.CategoryID,
			PercentOff: decimal.NewFromFloat(rule.PercentOff),
		})
	}
	return p
}

// UpdatePlanRequest replaces a plan's name, target and rule set wholesale
type UpdatePlanRequest struct {
	CreatePlanRequest
}

// PlanRuleResponse is one rule in a plan response
type PlanRuleResponse struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	PercentOff float64 `json:"percentOff"`
}

// PlanResponse represents the discount plan response structure
type PlanResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	TargetType types.TargetType   `json:"targetType"`
	TargetKey  string             `json:"targetKey"`
	Rules      []PlanRuleResponse `json:"rules"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// ListPlansResponse wraps the plan collection
type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}

// ToPlanResponse converts a domain plan to the response shape
func ToPlanResponse(p *plan.DiscountPlan) *PlanResponse {
	resp := &PlanResponse{
		ID:         p.ID,
		Name:       p.Name,
		TargetType: p.TargetType,
		TargetKey:  p.TargetKey,
		Rules:      make([]PlanRuleResponse, 0, len(p.Rules)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, r := range p.Rules {
		resp.Rules = append(resp.Rules, PlanRuleResponse{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			PercentOff: r.PercentOff.InexactFloat64(),
		})
	}
	return resp
}

// ToListPlansResponse converts a domain plan list to the response shape
func ToListPlansResponse(plans []*plan.DiscountPlan) *ListPlansResponse {
	resp := &ListPlansResponse{
		Items: make([]*PlanResponse, 0, len(plans)),
		Total: len(plans),
	}
	for _, p := range plans {
		resp.Items = append(resp.Items, ToPlanResponse(p))
	}
	return resp
}
