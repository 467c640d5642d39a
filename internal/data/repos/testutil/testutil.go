package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/brightsteps/brightsteps-backend/internal/data/db"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg = logger.NewNop()
	})
	return logg
}

// DB opens a fresh in-memory sqlite database per test, fully migrated.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Parent",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedChild(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *types.Child {
	tb.Helper()
	c := &types.Child{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		AvatarColor: "teal",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed child: %v", err)
	}
	return c
}

func SeedBehaviorType(tb testing.TB, ctx context.Context, tx *gorm.DB, name, category string, points int) *types.BehaviorType {
	tb.Helper()
	bt := &types.BehaviorType{
		ID:            uuid.New(),
		Name:          name,
		Category:      category,
		DefaultPoints: points,
		Active:        true,
	}
	if err := tx.WithContext(ctx).Create(bt).Error; err != nil {
		tb.Fatalf("seed behavior type: %v", err)
	}
	return bt
}

func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, childID, typeID uuid.UUID, points int, occurredAt time.Time) *types.BehaviorEvent {
	tb.Helper()
	ev := &types.BehaviorEvent{
		ID:             uuid.New(),
		ChildID:        childID,
		BehaviorTypeID: typeID,
		Points:         points,
		OccurredAt:     occurredAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(ev).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return ev
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, childID uuid.UUID, target int, startedAt, deadlineAt time.Time) *types.Goal {
	tb.Helper()
	g := &types.Goal{
		ID:           uuid.New(),
		ChildID:      childID,
		Title:        "Bike",
		TargetPoints: target,
		StartedAt:    startedAt.UTC(),
		DeadlineAt:   deadlineAt.UTC(),
		Active:       true,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}
