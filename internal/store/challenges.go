package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetChallengeStatus returns the completion markers. A store that never saw a
// completion returns the zero status.
func (s *Store) GetChallengeStatus() (*ChallengeStatus, error) {
	cs := &ChallengeStatus{}
	err := s.db.QueryRow(
		`SELECT last_completed_daily, last_completed_monthly FROM challenge_status WHERE id = 1`,
	).Scan(&cs.LastCompletedDaily, &cs.LastCompletedMonthly)
	if errors.Is(err, sql.ErrNoRows) {
		return cs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge status: %w", err)
	}
	return cs, nil
}

func (s *Store) SaveChallengeStatus(cs *ChallengeStatus) error {
	_, err := s.db.Exec(
		`INSERT INTO challenge_status (id, last_completed_daily, last_completed_monthly) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			last_completed_daily = excluded.last_completed_daily,
			last_completed_monthly = excluded.last_completed_monthly`,
		cs.LastCompletedDaily, cs.LastCompletedMonthly,
	)
	if err != nil {
		return fmt.Errorf("save challenge status: %w", err)
	}
	return nil
}
