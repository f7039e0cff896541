package models

import "github.com/julianstephens/dailytrack/internal/constants"

type Settings struct {
	StreakThreshold float64 `json:"streak_threshold"`
	Timezone        string  `json:"timezone"`
	DefaultPeriod   string  `json:"default_period"`
}

func DefaultSettings() Settings {
	return Settings{
		StreakThreshold: constants.DefaultStreakThreshold,
		Timezone:        constants.DefaultTimezone,
		DefaultPeriod:   constants.DefaultHistoryPeriod,
	}
}
