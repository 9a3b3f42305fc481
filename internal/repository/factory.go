package repository

import (
	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	pg "github.com/pixelpetals-dev/discount-editor/internal/postgres"
	repo "github.com/pixelpetals-dev/discount-editor/internal/repository/postgres"
)

func NewPlanRepository(db *pg.DB, logger *logger.Logger) plan.Repository {
	return repo.NewPlanRepository(db, logger)
}
