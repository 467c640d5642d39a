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

type CooldownRepo interface {
	ListByChildID(dbc dbctx.Context, childID uuid.UUID) ([]*types.CooldownRecord, error)
	Get(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string) (*types.CooldownRecord, error)
	UpsertCommitted(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error
	UpsertInteracted(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error
}

type cooldownRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCooldownRepo(db *gorm.DB, baseLog *logger.Logger) CooldownRepo {
	return &cooldownRepo{db: db, log: baseLog.With("repo", "CooldownRepo")}
}

func (r *cooldownRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *cooldownRepo) ListByChildID(dbc dbctx.Context, childID uuid.UUID) ([]*types.CooldownRecord, error) {
	if childID == uuid.Nil {
		return nil, nil
	}
	var out []*types.CooldownRecord
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("child_id = ?", childID).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cooldownRepo) Get(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string) (*types.CooldownRecord, error) {
	if childID == uuid.Nil || templateID == "" {
		return nil, nil
	}
	if entityID == "" {
		entityID = types.CooldownEntityNone
	}
	var out types.CooldownRecord
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("child_id = ? AND template_id = ? AND entity_id = ?", childID, templateID, entityID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cooldownRepo) UpsertCommitted(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error {
	return r.upsert(dbc, childID, templateID, entityID, func(row *types.CooldownRecord) {
		t := at.UTC()
		row.LastCommittedAt = &t
	})
}

func (r *cooldownRepo) UpsertInteracted(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error {
	return r.upsert(dbc, childID, templateID, entityID, func(row *types.CooldownRecord) {
		t := at.UTC()
		row.LastInteractedAt = &t
	})
}

func (r *cooldownRepo) upsert(dbc dbctx.Context, childID uuid.UUID, templateID, entityID string, mutate func(*types.CooldownRecord)) error {
	if childID == uuid.Nil || templateID == "" {
		return nil
	}
	if entityID == "" {
		entityID = types.CooldownEntityNone
	}
	now := time.Now().UTC()

	existing, err := r.Get(dbc, childID, templateID, entityID)
	if err != nil {
		return err
	}
	t := r.dbx(dbc).WithContext(dbc.Ctx)
	if existing != nil && existing.ID != uuid.Nil {
		mutate(existing)
		existing.UpdatedAt = now
		return t.Save(existing).Error
	}
	row := &types.CooldownRecord{
		ID:         uuid.New(),
		ChildID:    childID,
		TemplateID: templateID,
		EntityID:   entityID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	mutate(row)
	return t.Create(row).Error
}
