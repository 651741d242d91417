package store

import (
	"database/sql"
	"fmt"
)

func (s *Store) ListMilestones() ([]Milestone, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, required_count, required_streak, required_days, is_achieved, progress
		 FROM milestones ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var milestones []Milestone
	for rows.Next() {
		var m Milestone
		var achieved int
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.RequiredCount, &m.RequiredStreak, &m.RequiredDays, &achieved, &m.Progress); err != nil {
			return nil, err
		}
		m.IsAchieved = achieved == 1
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// SaveMilestones replaces the stored milestone list, keeping slice order.
func (s *Store) SaveMilestones(milestones []Milestone) error {
	return s.withTx(func(tx *sql.Tx) error {
		return saveMilestones(tx, milestones)
	})
}

func saveMilestones(e execer, milestones []Milestone) error {
	if _, err := e.Exec(`DELETE FROM milestones`); err != nil {
		return fmt.Errorf("clear milestones: %w", err)
	}
	for i, m := range milestones {
		achieved := 0
		if m.IsAchieved {
			achieved = 1
		}
		_, err := e.Exec(
			`INSERT INTO milestones (id, position, title, description, required_count, required_streak, required_days, is_achieved, progress)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, i, m.Title, m.Description, m.RequiredCount, m.RequiredStreak, m.RequiredDays, achieved, m.Progress,
		)
		if err != nil {
			return fmt.Errorf("insert milestone %s: %w", m.ID, err)
		}
	}
	return nil
}
