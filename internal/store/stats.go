package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// GetStats returns the stats record, ErrNotFound if it was never written or
// ErrCorruptRecord if the achievements column cannot be decoded.
func (s *Store) GetStats() (*Stats, error) {
	st := &Stats{}
	var achievements string
	var practiceDays sql.NullInt64
	err := s.db.QueryRow(
		`SELECT today_count, total_count, streak, last_chant_date, achievements, practice_days
		 FROM stats WHERE id = 1`,
	).Scan(&st.TodayCount, &st.TotalCount, &st.Streak, &st.LastChantDate, &achievements, &practiceDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if err := json.Unmarshal([]byte(achievements), &st.Achievements); err != nil {
		return nil, fmt.Errorf("decode achievements: %w", ErrCorruptRecord)
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	if practiceDays.Valid {
		d := int(practiceDays.Int64)
		st.PracticeDays = &d
	}
	return st, nil
}

func (s *Store) SaveStats(st *Stats) error {
	return saveStats(s.db, st)
}

func saveStats(e execer, st *Stats) error {
	achievements := st.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	data, err := json.Marshal(achievements)
	if err != nil {
		return fmt.Errorf("encode achievements: %w", err)
	}
	var practiceDays any
	if st.PracticeDays != nil {
		practiceDays = *st.PracticeDays
	}
	_, err = e.Exec(
		`INSERT INTO stats (id, today_count, total_count, streak, last_chant_date, achievements, practice_days)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			today_count = excluded.today_count,
			total_count = excluded.total_count,
			streak = excluded.streak,
			last_chant_date = excluded.last_chant_date,
			achievements = excluded.achievements,
			practice_days = excluded.practice_days`,
		st.TodayCount, st.TotalCount, st.Streak, st.LastChantDate, string(data), practiceDays,
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// ListDailyRecords returns the daily log, most recent date first.
func (s *Store) ListDailyRecords() ([]DailyRecord, error) {
	rows, err := s.db.Query(`SELECT date, count FROM daily_records ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}
	defer rows.Close()

	var records []DailyRecord
	for rows.Next() {
		var r DailyRecord
		if err := rows.Scan(&r.Date, &r.Count); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func replaceDailyRecords(e execer, records []DailyRecord) error {
	if _, err := e.Exec(`DELETE FROM daily_records`); err != nil {
		return fmt.Errorf("clear daily records: %w", err)
	}
	for _, r := range records {
		_, err := e.Exec(
			`INSERT INTO daily_records (date, count) VALUES (?, ?)
			 ON CONFLICT(date) DO UPDATE SET count = excluded.count`,
			r.Date, r.Count,
		)
		if err != nil {
			return fmt.Errorf("insert daily record %s: %w", r.Date, err)
		}
	}
	return nil
}

// SavePractice persists stats, the daily log and (when non-nil) the milestone
// list in one transaction.
func (s *Store) SavePractice(st *Stats, records []DailyRecord, milestones []Milestone) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := saveStats(tx, st); err != nil {
			return err
		}
		if err := replaceDailyRecords(tx, records); err != nil {
			return err
		}
		if milestones != nil {
			return saveMilestones(tx, milestones)
		}
		return nil
	})
}
