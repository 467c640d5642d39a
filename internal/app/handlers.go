package app

import (
	"github.com/brightsteps/brightsteps-backend/internal/http/handlers"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Child  *handlers.ChildHandler
	Event  *handlers.EventHandler
	Coach  *handlers.CoachHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Auth:   handlers.NewAuthHandler(s.Auth),
		Child:  handlers.NewChildHandler(s.Family),
		Event:  handlers.NewEventHandler(s.Event),
		Coach:  handlers.NewCoachHandler(s.Coach),
	}
}
