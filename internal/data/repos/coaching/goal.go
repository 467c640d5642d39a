package coaching

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type GoalRepo interface {
	Create(dbc dbctx.Context, row *types.Goal) error
	GetActiveByChildID(dbc dbctx.Context, childID uuid.UUID) (*types.Goal, error)
	DeactivateByChildID(dbc dbctx.Context, childID uuid.UUID) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	return &goalRepo{db: db, log: baseLog.With("repo", "GoalRepo")}
}

func (r *goalRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *goalRepo) Create(dbc dbctx.Context, row *types.Goal) error {
	if row == nil || row.ChildID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.StartedAt.IsZero() {
		row.StartedAt = now
	}
	row.CreatedAt = now
	row.UpdatedAt = now
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *goalRepo) GetActiveByChildID(dbc dbctx.Context, childID uuid.UUID) (*types.Goal, error) {
	if childID == uuid.Nil {
		return nil, nil
	}
	var out types.Goal
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("child_id = ? AND active = ?", childID, true).
		Order("created_at DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *goalRepo) DeactivateByChildID(dbc dbctx.Context, childID uuid.UUID) error {
	if childID == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Goal{}).
		Where("child_id = ? AND active = ?", childID, true).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now().UTC()}).Error
}
