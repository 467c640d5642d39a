package repos

import (
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos/coaching"
	"github.com/brightsteps/brightsteps-backend/internal/data/repos/user"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ChildRepo = coaching.ChildRepo
type BehaviorTypeRepo = coaching.BehaviorTypeRepo
type BehaviorEventRepo = coaching.BehaviorEventRepo
type GoalRepo = coaching.GoalRepo
type CooldownRepo = coaching.CooldownRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewChildRepo(db *gorm.DB, baseLog *logger.Logger) ChildRepo {
	return coaching.NewChildRepo(db, baseLog)
}
func NewBehaviorTypeRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorTypeRepo {
	return coaching.NewBehaviorTypeRepo(db, baseLog)
}
func NewBehaviorEventRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorEventRepo {
	return coaching.NewBehaviorEventRepo(db, baseLog)
}
func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	return coaching.NewGoalRepo(db, baseLog)
}
func NewCooldownRepo(db *gorm.DB, baseLog *logger.Logger) CooldownRepo {
	return coaching.NewCooldownRepo(db, baseLog)
}
