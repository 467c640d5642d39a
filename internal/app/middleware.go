package app

import (
	"github.com/brightsteps/brightsteps-backend/internal/http/middleware"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}
