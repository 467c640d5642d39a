package app

import (
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/modules/coaching"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

type Services struct {
	Auth   services.AuthService
	Family services.FamilyService
	Event  services.EventService
	Coach  services.CoachService
	Engine *coaching.Engine
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	familyService := services.NewFamilyService(db, log, r.Child, r.BehaviorType, r.Goal)
	eventService := services.NewEventService(db, log, familyService, r.BehaviorType, r.BehaviorEvent)

	provider := coaching.NewRepoDataProvider(r.BehaviorEvent, r.BehaviorType, r.Goal)
	cooldowns := coaching.NewRepoCooldownPersistence(r.Cooldown)
	engine, err := coaching.NewEngine(cfg.Coach, provider, cooldowns, log)
	if err != nil {
		return Services{}, err
	}
	coachService := services.NewCoachService(log, familyService, engine)

	return Services{
		Auth:   authService,
		Family: familyService,
		Event:  eventService,
		Coach:  coachService,
		Engine: engine,
	}, nil
}
