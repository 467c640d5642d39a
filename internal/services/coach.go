package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/modules/coaching"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

// CoachService fronts the coach card engine with ownership checks. The
// engine itself has no notion of accounts; this is where the two meet.
type CoachService interface {
	CardsFor(ctx context.Context, childID uuid.UUID) ([]coaching.CoachCard, error)
	CardVisible(ctx context.Context, cardID string)
	CardHidden(ctx context.Context, cardID string)
	CardInteraction(ctx context.Context, cardID string)
}

type coachService struct {
	log    *logger.Logger
	family FamilyService
	engine *coaching.Engine
}

func NewCoachService(baseLog *logger.Logger, family FamilyService, engine *coaching.Engine) CoachService {
	return &coachService{
		log:    baseLog.With("service", "CoachService"),
		family: family,
		engine: engine,
	}
}

func (s *coachService) CardsFor(ctx context.Context, childID uuid.UUID) ([]coaching.CoachCard, error) {
	if _, err := s.family.GetOwnedChild(ctx, childID); err != nil {
		return nil, err
	}
	cards := s.engine.GenerateCards(ctx, childID, time.Now().UTC())
	if cards == nil {
		cards = []coaching.CoachCard{}
	}
	return cards, nil
}

// Impression callbacks carry opaque card ids; an id the engine is not
// currently tracking is a no-op, so no ownership lookup is needed here.

func (s *coachService) CardVisible(_ context.Context, cardID string) {
	s.engine.CardBecameVisible(cardID)
}

func (s *coachService) CardHidden(_ context.Context, cardID string) {
	s.engine.CardBecameHidden(cardID)
}

func (s *coachService) CardInteraction(_ context.Context, cardID string) {
	s.engine.RecordInteraction(cardID)
}
