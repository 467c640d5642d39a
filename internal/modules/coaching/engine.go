package coaching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// Engine is the coach card pipeline: detect -> render -> cooldown filter ->
// select. One long-lived instance per process; recreating it per request
// would throw away the cooldown cache and tracked impressions.
//
// Generation is synchronous and runs entirely on an in-memory snapshot. A
// provider failure degrades to "no events", never to an error: an empty card
// list is always a valid, harmless result.
type Engine struct {
	cfg      Config
	provider DataProvider
	store    *CooldownStore
	tracker  *ImpressionTracker
	catalog  *TemplateCatalog
	log      *logger.Logger
	tracer   trace.Tracer
	group    singleflight.Group
}

func NewEngine(cfg Config, provider DataProvider, cooldowns CooldownPersistence, baseLog *logger.Logger) (*Engine, error) {
	catalog, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	log := baseLog.With("component", "CoachEngine")
	store := NewCooldownStore(cooldowns, baseLog)
	return &Engine{
		cfg:      cfg,
		provider: provider,
		store:    store,
		tracker:  NewImpressionTracker(store, cfg.DwellThreshold, baseLog),
		catalog:  catalog,
		log:      log,
		tracer:   otel.Tracer("coaching"),
	}, nil
}

// Catalog exposes the loaded template catalog (read-only).
func (e *Engine) Catalog() *TemplateCatalog { return e.catalog }

// GenerateCards is the sole generation entry point. Deterministic for a fixed
// event set, "now" and cooldown state; concurrent calls for the same child
// and instant share one computation.
func (e *Engine) GenerateCards(ctx context.Context, childID uuid.UUID, now time.Time) []CoachCard {
	key := childID.String() + "|" + now.UTC().Format(time.RFC3339)
	v, _, _ := e.group.Do(key, func() (interface{}, error) {
		return e.generate(ctx, childID, now.UTC()), nil
	})
	cards, _ := v.([]CoachCard)
	return cards
}

func (e *Engine) generate(ctx context.Context, childID uuid.UUID, now time.Time) []CoachCard {
	ctx, span := e.tracer.Start(ctx, "coach.generate")
	defer span.End()

	snap := e.buildSnapshot(ctx, childID, now)
	e.store.Preload(ctx, childID)

	signals := detectAll(e.cfg, snap)

	cands := make([]Candidate, 0, len(signals))
	for _, sig := range signals {
		cand, ok := renderSignal(e.log, e.cfg, e.catalog, snap, sig)
		if !ok {
			continue
		}
		if e.store.IsSuppressed(childID, cand.Template, cand.Card.EntityKey(), now) {
			continue
		}
		cands = append(cands, *cand)
	}

	cards := selectCards(cands, e.cfg)
	e.tracker.BeginCycle(childID, cards)

	span.SetAttributes(
		attribute.Int("coach.events", len(snap.events)),
		attribute.Int("coach.signals", len(signals)),
		attribute.Int("coach.cards", len(cards)),
	)
	e.log.Debug("generated coach cards",
		"child_id", childID,
		"events", len(snap.events),
		"signals", len(signals),
		"cards", len(cards),
	)
	return cards
}

func (e *Engine) buildSnapshot(ctx context.Context, childID uuid.UUID, now time.Time) *snapshot {
	snap := &snapshot{
		childID:    childID,
		now:        now,
		eventsByID: map[uuid.UUID]*types.BehaviorEvent{},
		typesByID:  map[uuid.UUID]*types.BehaviorType{},
	}

	from := windowStart(now, e.cfg.MaxWindowDays)
	events, err := e.provider.EventsFor(ctx, childID, from, now)
	if err != nil {
		e.log.Warn("event fetch failed, treating as empty", "child_id", childID, "error", err)
		events = nil
	}
	snap.events = events
	for _, ev := range events {
		snap.eventsByID[ev.ID] = ev
	}

	seen := map[uuid.UUID]bool{}
	for _, ev := range events {
		if seen[ev.BehaviorTypeID] {
			continue
		}
		seen[ev.BehaviorTypeID] = true
		bt, btErr := e.provider.BehaviorTypeFor(ctx, ev.BehaviorTypeID)
		if btErr != nil || bt == nil {
			continue // events of an unknown type simply produce no signals
		}
		snap.typesByID[bt.ID] = bt
	}

	goal, err := e.provider.ActiveGoalFor(ctx, childID)
	if err != nil {
		e.log.Warn("goal fetch failed, treating as none", "child_id", childID, "error", err)
		goal = nil
	}
	snap.goal = goal
	if goal != nil {
		if goal.StartedAt.Before(from) {
			goalEvents, gErr := e.provider.EventsFor(ctx, childID, goal.StartedAt, now)
			if gErr != nil {
				e.log.Warn("goal event fetch failed, using windowed events", "child_id", childID, "error", gErr)
				goalEvents = events
			}
			snap.goalEvents = goalEvents
		} else {
			snap.goalEvents = eventsSince(events, goal.StartedAt)
		}
	}
	return snap
}

// Impression feed, called by the presentation layer.

func (e *Engine) CardBecameVisible(cardID string) { e.tracker.CardBecameVisible(cardID) }
func (e *Engine) CardBecameHidden(cardID string)  { e.tracker.CardBecameHidden(cardID) }
func (e *Engine) RecordInteraction(cardID string) { e.tracker.RecordInteraction(cardID) }
