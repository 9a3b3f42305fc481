package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/postgres"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

type planRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: logger}
}

func (r *planRepository) Create(ctx context.Context, p *plan.DiscountPlan) error {
	query := `
		INSERT INTO discount_plans (
			id,
			shop_id,
			name,
			target_type,
			target_key,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		)
		VALUES (
			:id,
			:shop_id,
			:name,
			:target_type,
			:target_key,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	r.logger.Debugw("creating discount plan",
		"plan_id", p.ID,
		"shop_id", p.ShopID,
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
			r.logger.Errorw("failed to create discount plan", "error", err)
			return ierr.WithError(err).
				WithHint("Failed to create discount plan").
				Mark(ierr.ErrDatabase)
		}
		return r.insertRules(ctx, p.Rules)
	})
}

func (r *planRepository) insertRules(ctx context.Context, rules []*plan.Rule) error {
	query := `
		INSERT INTO discount_rules (
			id,
			discount_plan_id,
			category_id,
			percent_off,
			shop_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		)
		VALUES (
			:id,
			:discount_plan_id,
			:category_id,
			:percent_off,
			:shop_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	for _, rule := range rules {
		if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
			r.logger.Errorw("failed to create discount rule", "error", err, "rule_id", rule.ID)
			return ierr.WithError(err).
				WithHint("Failed to create discount rule").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.DiscountPlan, error) {
	query := `
		SELECT * FROM discount_plans
		WHERE id = :id
		AND shop_id = :shop_id
		AND status = :status
	`

	var p plan.DiscountPlan
	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":      id,
		"shop_id": types.GetShopID(ctx),
		"status":  types.StatusPublished,
	})
	if err != nil {
		r.logger.Errorw("failed to get discount plan", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to get discount plan").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("discount plan not found").
			WithHint("Discount plan not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read discount plan").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRules(ctx, []*plan.DiscountPlan{&p}); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.DiscountPlan, error) {
	query := `
		SELECT * FROM discount_plans
		WHERE shop_id = :shop_id
		AND status = :status
		ORDER BY created_at DESC
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"shop_id": types.GetShopID(ctx),
		"status":  types.StatusPublished,
	})
	if err != nil {
		r.logger.Errorw("failed to list discount plans", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list discount plans").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var plans []*plan.DiscountPlan
	for rows.Next() {
		var p plan.DiscountPlan
		if err := rows.StructScan(&p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to read discount plan").
				Mark(ierr.ErrDatabase)
		}
		plans = append(plans, &p)
	}

	if err := r.loadRules(ctx, plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, p *plan.DiscountPlan) error {
	query := `
		UPDATE discount_plans
		SET name = :name,
		target_type = :target_type,
		target_key = :target_key,
		updated_at = :updated_at,
		updated_by = :updated_by
		WHERE id = :id
		AND shop_id = :shop_id
	`

	// Rules are replaced wholesale: the admin surface always submits the full
	// rule list with the plan.
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		result, err := r.db.NamedExecContext(ctx, query, p)
		if err != nil {
			r.logger.Errorw("failed to update discount plan", "error", err)
			return ierr.WithError(err).
				WithHint("Failed to update discount plan").
				Mark(ierr.ErrDatabase)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
		if affected == 0 {
			return ierr.NewError("discount plan not found").
				WithHint("Discount plan not found").
				WithReportableDetails(map[string]any{"id": p.ID}).
				Mark(ierr.ErrNotFound)
		}

		deleteRules := `DELETE FROM discount_rules WHERE discount_plan_id = :plan_id AND shop_id = :shop_id`
		if _, err := r.db.NamedExecContext(ctx, deleteRules, map[string]interface{}{
			"plan_id": p.ID,
			"shop_id": p.ShopID,
		}); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace discount rules").
				Mark(ierr.ErrDatabase)
		}

		return r.insertRules(ctx, p.Rules)
	})
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	// Rules cascade with the plan via the FK constraint.
	query := `
		DELETE FROM discount_plans
		WHERE id = :id
		AND shop_id = :shop_id
	`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":      id,
		"shop_id": types.GetShopID(ctx),
	})
	if err != nil {
		r.logger.Errorw("failed to delete discount plan", "error", err)
		return ierr.WithError(err).
			WithHint("Failed to delete discount plan").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("discount plan not found").
			WithHint("Discount plan not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *planRepository) GetByTarget(ctx context.Context, targetType types.TargetType, targetKeys []string) ([]*plan.DiscountPlan, error) {
	if len(targetKeys) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT * FROM discount_plans
		WHERE shop_id = ?
		AND status = ?
		AND target_type = ?
		AND target_key IN (?)
		ORDER BY created_at ASC
	`, types.GetShopID(ctx), types.StatusPublished, targetType, targetKeys)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	query = r.db.Rebind(query)

	var plans []*plan.DiscountPlan
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		r.logger.Errorw("failed to get plans by target", "error", err, "target_type", targetType)
		return nil, ierr.WithError(err).
			WithHint("Failed to query discount plans").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRules(ctx, plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) ExistsForTarget(ctx context.Context, targetType types.TargetType, targetKey string, excludePlanID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM discount_plans
		WHERE shop_id = $1
		AND status = $2
		AND target_type = $3
		AND target_key = $4
		AND id != $5
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query,
		types.GetShopID(ctx), types.StatusPublished, targetType, targetKey, excludePlanID); err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check target uniqueness").
			Mark(ierr.ErrDatabase)
	}

	return count > 0, nil
}

func (r *planRepository) loadRules(ctx context.Context, plans []*plan.DiscountPlan) error {
	if len(plans) == 0 {
		return nil
	}

	planIDs := make([]string, len(plans))
	byID := make(map[string]*plan.DiscountPlan, len(plans))
	for i, p := range plans {
		planIDs[i] = p.ID
		byID[p.ID] = p
		p.Rules = nil
	}

	query, args, err := sqlx.In(`
		SELECT * FROM discount_rules
		WHERE discount_plan_id IN (?)
		ORDER BY created_at ASC
	`, planIDs)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	query = r.db.Rebind(query)

	var rules []*plan.Rule
	if err := r.db.SelectContext(ctx, &rules, query, args...); err != nil {
		r.logger.Errorw("failed to load discount rules", "error", err)
		return ierr.WithError(err).
			WithHint("Failed to load discount rules").
			Mark(ierr.ErrDatabase)
	}

	for _, rule := range rules {
		if p, ok := byID[rule.PlanID]; ok {
			p.Rules = append(p.Rules, rule)
		}
	}

	return nil
}
