package coaching

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type BehaviorEventRepo interface {
	CreateMany(dbc dbctx.Context, rows []*types.BehaviorEvent) ([]*types.BehaviorEvent, error)
	ListByChildAndWindow(dbc dbctx.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error)
}

type behaviorEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBehaviorEventRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorEventRepo {
	return &behaviorEventRepo{db: db, log: baseLog.With("repo", "BehaviorEventRepo")}
}

func (r *behaviorEventRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *behaviorEventRepo) CreateMany(dbc dbctx.Context, rows []*types.BehaviorEvent) ([]*types.BehaviorEvent, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.OccurredAt.IsZero() {
			row.OccurredAt = now
		}
		row.CreatedAt = now
		row.UpdatedAt = now
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *behaviorEventRepo) ListByChildAndWindow(dbc dbctx.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error) {
	if childID == uuid.Nil {
		return nil, nil
	}
	var out []*types.BehaviorEvent
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("child_id = ? AND occurred_at >= ? AND occurred_at <= ?", childID, from, to).
		Order("occurred_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
