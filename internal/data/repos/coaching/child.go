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

type ChildRepo interface {
	Create(dbc dbctx.Context, row *types.Child) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Child, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Child, error)
}

type childRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChildRepo(db *gorm.DB, baseLog *logger.Logger) ChildRepo {
	return &childRepo{db: db, log: baseLog.With("repo", "ChildRepo")}
}

func (r *childRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *childRepo) Create(dbc dbctx.Context, row *types.Child) error {
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *childRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Child, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Child
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *childRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Child, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Child
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
