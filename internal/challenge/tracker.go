package challenge

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

const (
	dayKey   = "2006-01-02"
	monthKey = "2006-01"
)

// Repository persists the single completion marker per period.
type Repository interface {
	GetChallengeStatus() (*store.ChallengeStatus, error)
	SaveChallengeStatus(cs *store.ChallengeStatus) error
}

// Tracker records completion of the current daily and monthly challenge.
// Marking only overwrites the slot for its period; history is not kept.
type Tracker struct {
	mu   sync.Mutex
	repo Repository
}

func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

func (t *Tracker) MarkDailyComplete(at time.Time) error {
	return t.mark(func(cs *store.ChallengeStatus) {
		cs.LastCompletedDaily = at.Format(dayKey)
	})
}

func (t *Tracker) MarkMonthlyComplete(at time.Time) error {
	return t.mark(func(cs *store.ChallengeStatus) {
		cs.LastCompletedMonthly = at.Format(monthKey)
	})
}

func (t *Tracker) mark(fn func(cs *store.ChallengeStatus)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cs, err := t.repo.GetChallengeStatus()
	if err != nil {
		return err
	}
	fn(cs)
	if err := t.repo.SaveChallengeStatus(cs); err != nil {
		return err
	}
	log.Debug().Str("daily", cs.LastCompletedDaily).Str("monthly", cs.LastCompletedMonthly).Msg("challenge completed")
	return nil
}

func (t *Tracker) IsDailyComplete(at time.Time) (bool, error) {
	cs, err := t.repo.GetChallengeStatus()
	if err != nil {
		return false, err
	}
	return cs.LastCompletedDaily == at.Format(dayKey), nil
}

func (t *Tracker) IsMonthlyComplete(at time.Time) (bool, error) {
	cs, err := t.repo.GetChallengeStatus()
	if err != nil {
		return false, err
	}
	return cs.LastCompletedMonthly == at.Format(monthKey), nil
}
