package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/samber/lo"
)

// InMemoryPlanStore implements plan.Repository for tests.
type InMemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*plan.DiscountPlan
	order []string
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans: make(map[string]*plan.DiscountPlan),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.DiscountPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; exists {
		return ierr.NewError("plan already exists").
			WithReportableDetails(map[string]any{"plan_id": p.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	s.plans[p.ID] = p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.DiscountPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.plans[id]
	if !exists {
		return nil, ierr.NewError("plan not found").
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlanStore) List(ctx context.Context) ([]*plan.DiscountPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*plan.DiscountPlan, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.plans[id])
	}
	return result, nil
}

func (s *InMemoryPlanStore) Update(ctx context.Context, p *plan.DiscountPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; !exists {
		return ierr.NewError("plan not found").
			WithReportableDetails(map[string]any{"plan_id": p.ID}).
			Mark(ierr.ErrNotFound)
	}
	s.plans[p.ID] = p
	return nil
}

func (s *InMemoryPlanStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[id]; !exists {
		return ierr.NewError("plan not found").
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	delete(s.plans, id)
	s.order = lo.Without(s.order, id)
	return nil
}

func (s *InMemoryPlanStore) GetByTarget(ctx context.Context, targetType types.TargetType, targetKeys []string) ([]*plan.DiscountPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*plan.DiscountPlan
	for _, id := range s.order {
		p := s.plans[id]
		if p.TargetType == targetType && lo.Contains(targetKeys, p.TargetKey) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *InMemoryPlanStore) ExistsForTarget(ctx context.Context, targetType types.TargetType, targetKey string, excludePlanID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plans {
		if p.ID == excludePlanID {
			continue
		}
		if p.TargetType == targetType && p.TargetKey == targetKey {
			return true, nil
		}
	}
	return false, nil
}
