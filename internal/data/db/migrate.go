package db

import (
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity
		// =========================
		&types.User{},

		// =========================
		// Family journal
		// =========================
		&types.Child{},
		&types.BehaviorType{},
		&types.BehaviorEvent{},
		&types.Goal{},

		// =========================
		// Coach engine state
		// =========================
		&types.CooldownRecord{},
	)
}

func (s *DBService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
