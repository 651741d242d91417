package store

import (
	"fmt"
	"strconv"
)

// DefaultSettings mirrors the rows seeded by the first migration.
var DefaultSettings = Settings{
	Theme:             "light",
	ColorScheme:       "spiritual-gold",
	BackgroundSound:   "none",
	CompletionChime:   "bell",
	Language:          "english",
	FontSize:          "medium",
	AnimationsEnabled: true,
	TargetCount:       108,
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetSettings reads the typed settings. Missing or unparsable rows fall back
// to DefaultSettings.
func (s *Store) GetSettings() (Settings, error) {
	rows, err := s.GetAllSettings()
	if err != nil {
		return DefaultSettings, err
	}
	out := DefaultSettings
	for _, r := range rows {
		switch r.Key {
		case "theme":
			out.Theme = r.Value
		case "color_scheme":
			out.ColorScheme = r.Value
		case "background_sound":
			out.BackgroundSound = r.Value
		case "completion_chime":
			out.CompletionChime = r.Value
		case "language":
			out.Language = r.Value
		case "font_size":
			out.FontSize = r.Value
		case "animations_enabled":
			if b, err := strconv.ParseBool(r.Value); err == nil {
				out.AnimationsEnabled = b
			}
		case "target_count":
			if n, err := strconv.Atoi(r.Value); err == nil && n >= 0 {
				out.TargetCount = n
			}
		}
	}
	return out, nil
}

func (s *Store) SaveSettings(st Settings) error {
	pairs := []Setting{
		{"theme", st.Theme},
		{"color_scheme", st.ColorScheme},
		{"background_sound", st.BackgroundSound},
		{"completion_chime", st.CompletionChime},
		{"language", st.Language},
		{"font_size", st.FontSize},
		{"animations_enabled", strconv.FormatBool(st.AnimationsEnabled)},
		{"target_count", strconv.Itoa(st.TargetCount)},
	}
	for _, p := range pairs {
		if err := s.SetSetting(p.Key, p.Value); err != nil {
			return fmt.Errorf("save setting %q: %w", p.Key, err)
		}
	}
	return nil
}
