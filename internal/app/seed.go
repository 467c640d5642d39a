package app

import (
	"context"

	"github.com/brightsteps/brightsteps-backend/internal/pkg/dbctx"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// seedBehaviorTypes installs the starter catalog on first boot. Existing
// installations are left untouched; parents archive or extend via the API.
func seedBehaviorTypes(ctx context.Context, log *logger.Logger, r Repos) error {
	n, err := r.BehaviorType.Count(dbctx.New(ctx))
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	rows := []*types.BehaviorType{
		{Name: "Shared toys", Category: types.BehaviorCategoryPositive, DefaultPoints: 2, Active: true},
		{Name: "Helped with chores", Category: types.BehaviorCategoryPositive, DefaultPoints: 3, Active: true},
		{Name: "Kind words", Category: types.BehaviorCategoryPositive, DefaultPoints: 2, Active: true},
		{Name: "Homework done", Category: types.BehaviorCategoryRoutinePositive, DefaultPoints: 3, Active: true},
		{Name: "Brushed teeth", Category: types.BehaviorCategoryRoutinePositive, DefaultPoints: 1, Active: true},
		{Name: "In bed on time", Category: types.BehaviorCategoryRoutinePositive, DefaultPoints: 2, Active: true},
		{Name: "Tantrum", Category: types.BehaviorCategoryNegative, DefaultPoints: -2, Active: true},
		{Name: "Hitting", Category: types.BehaviorCategoryNegative, DefaultPoints: -3, Active: true},
		{Name: "Bedtime refusal", Category: types.BehaviorCategoryNegative, DefaultPoints: -2, Active: true},
	}
	if err := r.BehaviorType.CreateMany(dbctx.New(ctx), rows); err != nil {
		return err
	}
	log.Info("seeded behavior type catalog", "count", len(rows))
	return nil
}
