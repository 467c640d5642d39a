package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/brightsteps/brightsteps-backend/internal/platform/envutil"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

// DBService owns the gorm handle. The default driver is sqlite with a local
// file, which keeps cooldown state durable per device; postgres is available
// for hosted deployments.
type DBService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDBService(logg *logger.Logger) (*DBService, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	driver := envutil.String("DB_DRIVER", "sqlite")
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			envutil.String("POSTGRES_USER", "postgres"),
			envutil.String("POSTGRES_PASSWORD", ""),
			envutil.String("POSTGRES_HOST", "localhost"),
			envutil.String("POSTGRES_PORT", "5432"),
			envutil.String("POSTGRES_NAME", "brightsteps"),
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(envutil.String("SQLITE_PATH", "brightsteps.db"))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	theDB, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	serviceLog.Info("database connected", "driver", driver)

	return &DBService{db: theDB, log: serviceLog}, nil
}

func (s *DBService) DB() *gorm.DB { return s.db }
