package app

import (
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

type Repos struct {
	User          repos.UserRepo
	Child         repos.ChildRepo
	BehaviorType  repos.BehaviorTypeRepo
	BehaviorEvent repos.BehaviorEventRepo
	Goal          repos.GoalRepo
	Cooldown      repos.CooldownRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		Child:         repos.NewChildRepo(db, log),
		BehaviorType:  repos.NewBehaviorTypeRepo(db, log),
		BehaviorEvent: repos.NewBehaviorEventRepo(db, log),
		Goal:          repos.NewGoalRepo(db, log),
		Cooldown:      repos.NewCooldownRepo(db, log),
	}
}
