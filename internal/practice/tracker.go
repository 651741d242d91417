// Package practice owns the repetition counters: lifetime stats with streak
// tracking, the bounded daily log, one-time achievements and milestones.
package practice

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

const (
	DateLayout = "2006-01-02"

	// MaxDailyRecords bounds the daily log to the most recent dates.
	MaxDailyRecords = 30
)

// Repository is the persistence the tracker needs. *store.Store satisfies it.
type Repository interface {
	GetStats() (*store.Stats, error)
	SaveStats(st *store.Stats) error
	ListDailyRecords() ([]store.DailyRecord, error)
	ListMilestones() ([]store.Milestone, error)
	SaveMilestones(milestones []store.Milestone) error
	SavePractice(st *store.Stats, records []store.DailyRecord, milestones []store.Milestone) error
}

// Tracker serialises every read-modify-write of the practice records.
type Tracker struct {
	mu   sync.Mutex
	repo Repository
	now  func() time.Time
}

// Result is what a single increment changed.
type Result struct {
	Stats           *store.Stats
	NewAchievements []string
	NewMilestones   []store.Milestone
}

func NewTracker(repo Repository, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{repo: repo, now: now}
}

func (t *Tracker) today() string {
	return t.now().Format(DateLayout)
}

// Stats returns the current stats after day-rollover reconciliation.
func (t *Tracker) Stats() (*store.Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

// DailyRecords returns the daily log, most recent first.
func (t *Tracker) DailyRecords() ([]store.DailyRecord, error) {
	return t.repo.ListDailyRecords()
}

func newStats(today string) *store.Stats {
	days := 0
	return &store.Stats{
		LastChantDate: today,
		Achievements:  []string{},
		PracticeDays:  &days,
	}
}

// load reads the stats record, initialising it on first use and resetting the
// daily counter when the calendar day has changed.
func (t *Tracker) load() (*store.Stats, error) {
	today := t.today()

	st, err := t.repo.GetStats()
	if errors.Is(err, store.ErrCorruptRecord) {
		log.Warn().Err(err).Msg("stats record unreadable, reinitialising")
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrCorruptRecord) {
		st = newStats(today)
		if err := t.repo.SaveStats(st); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err != nil {
		return nil, err
	}

	dirty := false
	if st.LastChantDate != today {
		if diff, ok := daysBetween(st.LastChantDate, today); !ok || diff > 1 {
			if st.Streak > 0 {
				log.Info().Int("streak", st.Streak).Str("last", st.LastChantDate).Msg("streak broken")
			}
			st.Streak = 0
		}
		st.TodayCount = 0
		st.LastChantDate = today
		dirty = true
	}

	if st.PracticeDays == nil {
		records, err := t.repo.ListDailyRecords()
		if err != nil {
			return nil, err
		}
		days := len(records)
		st.PracticeDays = &days
		dirty = true
	}

	if dirty {
		if err := t.repo.SaveStats(st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Increment adds n repetitions for today, updates the daily log and streak,
// and evaluates achievements and milestones against the same snapshot.
func (t *Tracker) Increment(n int) (*Result, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := t.load()
	if err != nil {
		return nil, err
	}
	records, err := t.repo.ListDailyRecords()
	if err != nil {
		return nil, err
	}

	today := t.today()
	idx := -1
	for i := range records {
		if records[i].Date == today {
			idx = i
			break
		}
	}

	if idx >= 0 {
		records[idx].Count += n
	} else {
		// First repetition of the day. The streak only carries over from a
		// practice day that was exactly yesterday.
		if prev := latestBefore(records, today); prev != "" {
			if diff, ok := daysBetween(prev, today); !ok || diff > 1 {
				st.Streak = 0
			}
		}
		st.Streak++
		records = append(records, store.DailyRecord{Date: today, Count: n})
		days := st.Days() + 1
		st.PracticeDays = &days
	}

	st.TodayCount += n
	st.TotalCount += n
	records = trimRecords(records)

	unlocked := Evaluate(st)
	milestones, achieved, err := t.progress(ProgressInput{
		TotalCount:   st.TotalCount,
		Streak:       st.Streak,
		PracticeDays: st.PracticeDays,
	})
	if err != nil {
		return nil, err
	}

	if err := t.repo.SavePractice(st, records, milestones); err != nil {
		return nil, err
	}

	return &Result{Stats: st, NewAchievements: unlocked, NewMilestones: achieved}, nil
}

// Replace overwrites stats and the daily log wholesale, then re-evaluates
// achievements and milestones.
func (t *Tracker) Replace(st store.Stats, records []store.DailyRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st.DailyRecords = nil
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	if st.PracticeDays == nil {
		days := len(records)
		st.PracticeDays = &days
	}
	records = trimRecords(append([]store.DailyRecord(nil), records...))
	return t.commit(&st, records)
}

// Merge reconciles the current stats with fn's result. The daily log is left
// untouched.
func (t *Tracker) Merge(fn func(current store.Stats) store.Stats) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.load()
	if err != nil {
		return err
	}
	records, err := t.repo.ListDailyRecords()
	if err != nil {
		return err
	}
	merged := fn(*current)
	merged.DailyRecords = nil
	return t.commit(&merged, records)
}

func (t *Tracker) commit(st *store.Stats, records []store.DailyRecord) error {
	Evaluate(st)
	milestones, _, err := t.progress(ProgressInput{
		TotalCount:   st.TotalCount,
		Streak:       st.Streak,
		PracticeDays: st.PracticeDays,
	})
	if err != nil {
		return err
	}
	return t.repo.SavePractice(st, records, milestones)
}

// trimRecords sorts records newest first and keeps the most recent
// MaxDailyRecords dates.
func trimRecords(records []store.DailyRecord) []store.DailyRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	if len(records) > MaxDailyRecords {
		records = records[:MaxDailyRecords]
	}
	return records
}

func latestBefore(records []store.DailyRecord, date string) string {
	latest := ""
	for _, r := range records {
		if r.Date < date && r.Date > latest {
			latest = r.Date
		}
	}
	return latest
}

// daysBetween returns the number of whole days from a to b. ok is false when
// either date does not parse.
func daysBetween(a, b string) (int, bool) {
	from, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}
