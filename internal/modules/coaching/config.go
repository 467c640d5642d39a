package coaching

import (
	"time"

	"github.com/brightsteps/brightsteps-backend/internal/platform/envutil"
)

// Config carries every tunable threshold of the coach engine. The shape of
// each determination is fixed; the constants are deployment configuration.
type Config struct {
	// Selection caps.
	MaxCards       int
	RiskCap        int
	ImprovementCap int

	// Snapshot fetch horizon. Individual detectors use narrower windows.
	MaxWindowDays int

	// routine_forming: one behavior type logged repeatedly in a short window.
	RoutineWindowDays int
	RoutineMinCount   int

	// positive_pattern: sustained most-frequent positive behavior.
	PatternWindowDays int
	PatternMinCount   int

	// goal_at_risk: projection from the trailing earn rate.
	GoalRiskWindowDays int

	// goal_stalled: earning activity that went quiet.
	StalledWindowDays int
	StalledQuietDays  int
	StalledMinCount   int

	// recurring_challenge: repeated negative behavior, optional
	// time-of-day clustering.
	ChallengeWindowDays int
	ChallengeMinCount   int

	// Impressions.
	DwellThreshold time.Duration

	// How long a rendered card stays actionable.
	CardTTL time.Duration
}

func LoadConfigFromEnv() Config {
	return Config{
		MaxCards:            envutil.Int("COACH_MAX_CARDS", 5),
		RiskCap:             envutil.Int("COACH_RISK_CAP", 1),
		ImprovementCap:      envutil.Int("COACH_IMPROVEMENT_CAP", 2),
		MaxWindowDays:       envutil.Int("COACH_MAX_WINDOW_DAYS", 30),
		RoutineWindowDays:   envutil.Int("COACH_ROUTINE_WINDOW_DAYS", 7),
		RoutineMinCount:     envutil.Int("COACH_ROUTINE_MIN_COUNT", 3),
		PatternWindowDays:   envutil.Int("COACH_PATTERN_WINDOW_DAYS", 14),
		PatternMinCount:     envutil.Int("COACH_PATTERN_MIN_COUNT", 3),
		GoalRiskWindowDays:  envutil.Int("COACH_GOAL_RISK_WINDOW_DAYS", 7),
		StalledWindowDays:   envutil.Int("COACH_STALLED_WINDOW_DAYS", 14),
		StalledQuietDays:    envutil.Int("COACH_STALLED_QUIET_DAYS", 5),
		StalledMinCount:     envutil.Int("COACH_STALLED_MIN_COUNT", 2),
		ChallengeWindowDays: envutil.Int("COACH_CHALLENGE_WINDOW_DAYS", 14),
		ChallengeMinCount:   envutil.Int("COACH_CHALLENGE_MIN_COUNT", 2),
		DwellThreshold:      envutil.Duration("COACH_DWELL_THRESHOLD", 2*time.Second),
		CardTTL:             envutil.Duration("COACH_CARD_TTL", 24*time.Hour),
	}
}

func (c Config) normalized() Config {
	if c.MaxCards <= 0 {
		c.MaxCards = 5
	}
	if c.RiskCap <= 0 {
		c.RiskCap = 1
	}
	if c.ImprovementCap <= 0 {
		c.ImprovementCap = 2
	}
	if c.MaxWindowDays <= 0 {
		c.MaxWindowDays = 30
	}
	if c.RoutineWindowDays <= 0 {
		c.RoutineWindowDays = 7
	}
	if c.RoutineMinCount <= 0 {
		c.RoutineMinCount = 3
	}
	if c.PatternWindowDays <= 0 {
		c.PatternWindowDays = 14
	}
	if c.PatternMinCount <= 0 {
		c.PatternMinCount = 3
	}
	if c.GoalRiskWindowDays <= 0 {
		c.GoalRiskWindowDays = 7
	}
	if c.StalledWindowDays <= 0 {
		c.StalledWindowDays = 14
	}
	if c.StalledQuietDays <= 0 {
		c.StalledQuietDays = 5
	}
	if c.StalledMinCount <= 0 {
		c.StalledMinCount = 2
	}
	if c.ChallengeWindowDays <= 0 {
		c.ChallengeWindowDays = 14
	}
	if c.ChallengeMinCount <= 0 {
		c.ChallengeMinCount = 2
	}
	if c.DwellThreshold <= 0 {
		c.DwellThreshold = 2 * time.Second
	}
	if c.CardTTL <= 0 {
		c.CardTTL = 24 * time.Hour
	}
	return c
}
