package plan

import (
	"context"

	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// Repository defines the interface for discount plan data access
type Repository interface {
	Create(ctx context.Context, plan *DiscountPlan) error
	Get(ctx context.Context, id string) (*DiscountPlan, error)
	List(ctx context.Context) ([]*DiscountPlan, error)
	Update(ctx context.Context, plan *DiscountPlan) error
	Delete(ctx context.Context, id string) error

	// GetByTarget returns all plans matching the target type whose target key
	// is in the candidate set, rules preloaded, in stable insertion order.
	GetByTarget(ctx context.Context, targetType types.TargetType, targetKeys []string) ([]*DiscountPlan, error)

	// ExistsForTarget reports whether a plan already targets the given key.
	// Used to enforce the one-plan-per-(type,key) invariant at write time.
	ExistsForTarget(ctx context.Context, targetType types.TargetType, targetKey string, excludePlanID string) (bool, error)
}
