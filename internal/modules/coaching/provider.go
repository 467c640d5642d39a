package coaching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos"
	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// DataProvider is the read-only view of the host application's data the
// engine needs. The engine never writes through it.
type DataProvider interface {
	EventsFor(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error)
	BehaviorTypeFor(ctx context.Context, id uuid.UUID) (*types.BehaviorType, error)
	ActiveGoalFor(ctx context.Context, childID uuid.UUID) (*types.Goal, error)
}

// CooldownPersistence is the durable side of the cooldown store.
type CooldownPersistence interface {
	List(ctx context.Context, childID uuid.UUID) ([]*types.CooldownRecord, error)
	MarkCommitted(ctx context.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error
	MarkInteracted(ctx context.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error
}

// RepoDataProvider adapts the gorm repos to the engine's provider interface.
type RepoDataProvider struct {
	events repos.BehaviorEventRepo
	btypes repos.BehaviorTypeRepo
	goals  repos.GoalRepo
}

func NewRepoDataProvider(events repos.BehaviorEventRepo, btypes repos.BehaviorTypeRepo, goals repos.GoalRepo) *RepoDataProvider {
	return &RepoDataProvider{events: events, btypes: btypes, goals: goals}
}

func (p *RepoDataProvider) EventsFor(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error) {
	return p.events.ListByChildAndWindow(dbctx.New(ctx), childID, from, to)
}

func (p *RepoDataProvider) BehaviorTypeFor(ctx context.Context, id uuid.UUID) (*types.BehaviorType, error) {
	return p.btypes.GetByID(dbctx.New(ctx), id)
}

func (p *RepoDataProvider) ActiveGoalFor(ctx context.Context, childID uuid.UUID) (*types.Goal, error) {
	return p.goals.GetActiveByChildID(dbctx.New(ctx), childID)
}

// RepoCooldownPersistence adapts the cooldown repo.
type RepoCooldownPersistence struct {
	repo repos.CooldownRepo
}

func NewRepoCooldownPersistence(repo repos.CooldownRepo) *RepoCooldownPersistence {
	return &RepoCooldownPersistence{repo: repo}
}

func (p *RepoCooldownPersistence) List(ctx context.Context, childID uuid.UUID) ([]*types.CooldownRecord, error) {
	return p.repo.ListByChildID(dbctx.New(ctx), childID)
}

func (p *RepoCooldownPersistence) MarkCommitted(ctx context.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error {
	return p.repo.UpsertCommitted(dbctx.New(ctx), childID, templateID, entityID, at)
}

func (p *RepoCooldownPersistence) MarkInteracted(ctx context.Context, childID uuid.UUID, templateID, entityID string, at time.Time) error {
	return p.repo.UpsertInteracted(dbctx.New(ctx), childID, templateID, entityID, at)
}
