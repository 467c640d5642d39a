package app

import (
	"time"

	"github.com/brightsteps/brightsteps-backend/internal/modules/coaching"
	"github.com/brightsteps/brightsteps-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AllowedOrigins []string
	Coach          coaching.Config
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		AllowedOrigins: envutil.Strings("ALLOWED_ORIGINS", nil),
		Coach:          coaching.LoadConfigFromEnv(),
	}
}
