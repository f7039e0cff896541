package constants

const (
	SettingStreakThreshold = "streak_threshold"
	SettingTimezone        = "timezone"
	SettingDefaultPeriod   = "default_period"

	DefaultTimezone      = "Local"
	DefaultHistoryPeriod = PeriodMonth
)
