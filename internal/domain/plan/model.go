package plan

import (
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/shopspring/decimal"
)

// DiscountPlan associates a target (segment or customer) with a named bundle
// of percentage rules. Plans are authored by the admin surface and read-only
// to the resolution pipeline.
type DiscountPlan struct {
	ID         string           `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	TargetType types.TargetType `json:"target_type" db:"target_type"`
	TargetKey  string           `json:"target_key" db:"target_key"`
	Rules      []*Rule          `json:"rules" db:"-"`
	types.BaseModel
}

// Rule is a single (collection, percent-off) pair owned by exactly one plan.
// Rules are cascade-deleted with their plan. CategoryID uniqueness within a
// plan is not guaranteed by storage; readers must collapse duplicates.
type Rule struct {
	ID         string          `json:"id" db:"id"`
	PlanID     string          `json:"discount_plan_id" db:"discount_plan_id"`
	CategoryID string          `json:"category_id" db:"category_id"`
	PercentOff decimal.Decimal `json:"percent_off" db:"percent_off"`
	types.BaseModel
}

// MaxPercentOff returns the highest rule percentage on the plan, zero when the
// plan has no rules.
func (p *DiscountPlan) MaxPercentOff() decimal.Decimal {
	max := decimal.Zero
	for _, r := range p.Rules {
		if r.PercentOff.GreaterThan(max) {
			max = r.PercentOff
		}
	}
	return max
}
