package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos"
	"github.com/brightsteps/brightsteps-backend/internal/pkg/ctxutil"
	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// FamilyService manages the caller's children, the behavior type catalog and
// per-child goals. Every child-scoped operation verifies ownership against
// the identity on the context.
type FamilyService interface {
	CreateChild(ctx context.Context, name, avatarColor string, birthYear int) (*types.Child, error)
	ListChildren(ctx context.Context) ([]*types.Child, error)
	GetOwnedChild(ctx context.Context, childID uuid.UUID) (*types.Child, error)
	ListBehaviorTypes(ctx context.Context) ([]*types.BehaviorType, error)
	SetGoal(ctx context.Context, childID uuid.UUID, title string, targetPoints int, deadline string) (*types.Goal, error)
	ActiveGoal(ctx context.Context, childID uuid.UUID) (*types.Goal, error)
}

type familyService struct {
	db               *gorm.DB
	log              *logger.Logger
	childRepo        repos.ChildRepo
	behaviorTypeRepo repos.BehaviorTypeRepo
	goalRepo         repos.GoalRepo
}

func NewFamilyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	childRepo repos.ChildRepo,
	behaviorTypeRepo repos.BehaviorTypeRepo,
	goalRepo repos.GoalRepo,
) FamilyService {
	return &familyService{
		db:               db,
		log:              baseLog.With("service", "FamilyService"),
		childRepo:        childRepo,
		behaviorTypeRepo: behaviorTypeRepo,
		goalRepo:         goalRepo,
	}
}

func (s *familyService) CreateChild(ctx context.Context, name, avatarColor string, birthYear int) (*types.Child, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("missing caller identity")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("child name is required")
	}
	if avatarColor == "" {
		avatarColor = "teal"
	}
	child := &types.Child{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		Name:        name,
		AvatarColor: avatarColor,
		BirthYear:   birthYear,
	}
	if err := s.childRepo.Create(dbctx.New(ctx), child); err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}
	s.log.Info("child created", "user_id", rd.UserID, "child_id", child.ID)
	return child, nil
}

func (s *familyService) ListChildren(ctx context.Context) ([]*types.Child, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("missing caller identity")
	}
	return s.childRepo.ListByUserID(dbctx.New(ctx), rd.UserID)
}

// GetOwnedChild is the single ownership gate used by every child-scoped
// endpoint. Not-found and not-owned are indistinguishable to the caller.
func (s *familyService) GetOwnedChild(ctx context.Context, childID uuid.UUID) (*types.Child, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("missing caller identity")
	}
	child, err := s.childRepo.GetByID(dbctx.New(ctx), childID)
	if err != nil {
		return nil, fmt.Errorf("lookup child: %w", err)
	}
	if child == nil || child.UserID != rd.UserID {
		return nil, fmt.Errorf("child not found")
	}
	return child, nil
}

func (s *familyService) ListBehaviorTypes(ctx context.Context) ([]*types.BehaviorType, error) {
	return s.behaviorTypeRepo.ListActive(dbctx.New(ctx))
}

func (s *familyService) SetGoal(ctx context.Context, childID uuid.UUID, title string, targetPoints int, deadline string) (*types.Goal, error) {
	if _, err := s.GetOwnedChild(ctx, childID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if targetPoints <= 0 {
		return nil, fmt.Errorf("target points must be positive")
	}
	deadlineAt, err := parseDeadline(deadline)
	if err != nil {
		return nil, err
	}

	goal := &types.Goal{
		ID:           uuid.New(),
		ChildID:      childID,
		Title:        title,
		TargetPoints: targetPoints,
		DeadlineAt:   deadlineAt,
		Active:       true,
	}
	// One active goal per child: setting a new one retires the old.
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.NewTx(ctx, tx)
		if dErr := s.goalRepo.DeactivateByChildID(dbc, childID); dErr != nil {
			return dErr
		}
		return s.goalRepo.Create(dbc, goal)
	}); err != nil {
		return nil, fmt.Errorf("set goal: %w", err)
	}
	s.log.Info("goal set", "child_id", childID, "goal_id", goal.ID)
	return goal, nil
}

// parseDeadline accepts RFC3339 or a bare date; a bare date means end of day UTC.
func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("goal deadline is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		if !t.After(time.Now()) {
			return time.Time{}, fmt.Errorf("goal deadline must be in the future")
		}
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid goal deadline %q", raw)
	}
	t = t.Add(24*time.Hour - time.Second)
	if !t.After(time.Now()) {
		return time.Time{}, fmt.Errorf("goal deadline must be in the future")
	}
	return t.UTC(), nil
}

func (s *familyService) ActiveGoal(ctx context.Context, childID uuid.UUID) (*types.Goal, error) {
	if _, err := s.GetOwnedChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.goalRepo.GetActiveByChildID(dbctx.New(ctx), childID)
}
