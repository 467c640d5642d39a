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

type BehaviorTypeRepo interface {
	CreateMany(dbc dbctx.Context, rows []*types.BehaviorType) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BehaviorType, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.BehaviorType, error)
	ListActive(dbc dbctx.Context) ([]*types.BehaviorType, error)
	Count(dbc dbctx.Context) (int64, error)
}

type behaviorTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBehaviorTypeRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorTypeRepo {
	return &behaviorTypeRepo{db: db, log: baseLog.With("repo", "BehaviorTypeRepo")}
}

func (r *behaviorTypeRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *behaviorTypeRepo) CreateMany(dbc dbctx.Context, rows []*types.BehaviorType) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.CreatedAt = now
		row.UpdatedAt = now
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error
}

func (r *behaviorTypeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BehaviorType, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.BehaviorType
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *behaviorTypeRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.BehaviorType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []*types.BehaviorType
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *behaviorTypeRepo) ListActive(dbc dbctx.Context) ([]*types.BehaviorType, error) {
	var out []*types.BehaviorType
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("active = ?", true).
		Order("category ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *behaviorTypeRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := r.dbx(dbc).WithContext(dbc.Ctx).Model(&types.BehaviorType{}).Count(&n).Error
	return n, err
}
