package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// GetNotificationPrefs returns ErrNotFound until preferences are first saved.
func (s *Store) GetNotificationPrefs() (*NotificationPrefs, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM notification_prefs WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get notification prefs: %w", err)
	}
	p := &NotificationPrefs{}
	if err := json.Unmarshal([]byte(data), p); err != nil {
		return nil, fmt.Errorf("decode notification prefs: %w", ErrCorruptRecord)
	}
	return p, nil
}

func (s *Store) SaveNotificationPrefs(p *NotificationPrefs) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode notification prefs: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO notification_prefs (id, data) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("save notification prefs: %w", err)
	}
	return nil
}
