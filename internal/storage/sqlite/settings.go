package sqlite

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/dailytrack/internal/constants"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
)

// GetSettings reads the config table. Missing keys keep their defaults.
func (s *Store) GetSettings() (models.Settings, error) {
	db, err := s.conn()
	if err != nil {
		return models.Settings{}, err
	}

	rows, err := db.Query("SELECT key, value FROM config")
	if err != nil {
		return models.Settings{}, apperrors.Storage("get settings", err)
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, apperrors.Storage("get settings", err)
		}
		switch key {
		case constants.SettingStreakThreshold:
			threshold, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.StreakThreshold = threshold
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultPeriod:
			settings.DefaultPeriod = value
		}
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, apperrors.Storage("get settings", err)
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return apperrors.Storage("save settings", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return apperrors.Storage("save settings", err)
	}
	defer stmt.Close()

	values := map[string]string{
		constants.SettingStreakThreshold: strconv.FormatFloat(settings.StreakThreshold, 'f', -1, 64),
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingDefaultPeriod:   settings.DefaultPeriod,
	}
	for key, value := range values {
		if _, err := stmt.Exec(key, value); err != nil {
			return apperrors.Storage("save settings", err)
		}
	}

	return apperrors.Storage("save settings", tx.Commit())
}
