package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos"
	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// EventService records behavior observations. Points default from the
// behavior type when the caller does not override them.
type EventService interface {
	Log(ctx context.Context, childID, behaviorTypeID uuid.UUID, points *int, occurredAt *time.Time, note string) (*types.BehaviorEvent, error)
	ListWindow(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error)
}

type eventService struct {
	db               *gorm.DB
	log              *logger.Logger
	family           FamilyService
	behaviorTypeRepo repos.BehaviorTypeRepo
	eventRepo        repos.BehaviorEventRepo
}

func NewEventService(
	db *gorm.DB,
	baseLog *logger.Logger,
	family FamilyService,
	behaviorTypeRepo repos.BehaviorTypeRepo,
	eventRepo repos.BehaviorEventRepo,
) EventService {
	return &eventService{
		db:               db,
		log:              baseLog.With("service", "EventService"),
		family:           family,
		behaviorTypeRepo: behaviorTypeRepo,
		eventRepo:        eventRepo,
	}
}

func (s *eventService) Log(ctx context.Context, childID, behaviorTypeID uuid.UUID, points *int, occurredAt *time.Time, note string) (*types.BehaviorEvent, error) {
	if _, err := s.family.GetOwnedChild(ctx, childID); err != nil {
		return nil, err
	}
	bt, err := s.behaviorTypeRepo.GetByID(dbctx.New(ctx), behaviorTypeID)
	if err != nil {
		return nil, fmt.Errorf("lookup behavior type: %w", err)
	}
	if bt == nil || !bt.Active {
		return nil, fmt.Errorf("unknown behavior type")
	}

	p := bt.DefaultPoints
	if points != nil {
		p = *points
	}
	at := time.Now().UTC()
	if occurredAt != nil {
		at = occurredAt.UTC()
	}
	if at.After(time.Now().UTC().Add(time.Minute)) {
		return nil, fmt.Errorf("event cannot occur in the future")
	}

	ev := &types.BehaviorEvent{
		ID:             uuid.New(),
		ChildID:        childID,
		BehaviorTypeID: behaviorTypeID,
		Points:         p,
		OccurredAt:     at,
		Note:           note,
	}
	if _, err := s.eventRepo.CreateMany(dbctx.New(ctx), []*types.BehaviorEvent{ev}); err != nil {
		return nil, fmt.Errorf("record event: %w", err)
	}
	s.log.Info("behavior event logged", "child_id", childID, "behavior_type_id", behaviorTypeID, "points", p)
	return ev, nil
}

func (s *eventService) ListWindow(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*types.BehaviorEvent, error) {
	if _, err := s.family.GetOwnedChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByChildAndWindow(dbctx.New(ctx), childID, from, to)
}
