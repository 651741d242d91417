package store

import (
	"database/sql"
	"errors"
	"fmt"
)

func (s *Store) GetIdentity() (*Identity, error) {
	id := &Identity{}
	err := s.db.QueryRow(
		`SELECT spiritual_name, symbol_id, unique_id, creation_date FROM identity WHERE id = 1`,
	).Scan(&id.SpiritualName, &id.SymbolID, &id.UniqueID, &id.CreationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return id, nil
}

// SaveIdentity writes the single identity row, overwriting any previous one.
func (s *Store) SaveIdentity(id *Identity) error {
	return saveIdentity(s.db, id)
}

func saveIdentity(e execer, id *Identity) error {
	_, err := e.Exec(
		`INSERT INTO identity (id, spiritual_name, symbol_id, unique_id, creation_date) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			spiritual_name = excluded.spiritual_name,
			symbol_id = excluded.symbol_id,
			unique_id = excluded.unique_id,
			creation_date = excluded.creation_date`,
		id.SpiritualName, id.SymbolID, id.UniqueID, id.CreationDate,
	)
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// ResetJourney deletes the identity together with stats, the daily log and
// milestone progress.
func (s *Store) ResetJourney() error {
	return s.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"identity", "stats", "daily_records", "milestones"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
