package practice

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

// Catalog lists every milestone definition in display order. Entries added
// here later are merged into existing users' lists by ID.
var Catalog = []store.Milestone{
	{ID: "FIRST_STEP", Title: "First Step", Description: "Begin your spiritual journey with your first mantra", RequiredCount: 1},
	{ID: "DAILY_PRACTICE", Title: "Daily Practice", Description: "Complete 7 consecutive days of mantra chanting", RequiredStreak: 7},
	{ID: "HABIT_FORMATION", Title: "Habit Formation", Description: "Maintain your practice for 21 consecutive days", RequiredStreak: 21},
	{ID: "SACRED_108", Title: "Sacred 108", Description: "Complete 108 mantras in your spiritual journey", RequiredCount: 108},
	{ID: "SPIRITUAL_DEDICATION", Title: "Spiritual Dedication", Description: "Reach 1,008 total mantras in your practice", RequiredCount: 1008},
	{ID: "DEEP_DEVOTION", Title: "Deep Devotion", Description: "Achieve 10,008 mantras in your lifetime practice", RequiredCount: 10008},
	{ID: "MONTHLY_DEVOTEE", Title: "Monthly Devotee", Description: "Practice mantra chanting for 30 consecutive days", RequiredStreak: 30},
	{ID: "SPIRITUAL_MASTER", Title: "Spiritual Master", Description: "Complete 108 days of consecutive practice", RequiredStreak: 108},
	// Days need not be consecutive.
	{ID: "ENLIGHTENMENT_PATH", Title: "Enlightenment Path", Description: "Practice for 365 days, creating a foundation for enlightenment", RequiredDays: 365},
}

// ProgressInput carries the stats milestones are computed from. A nil
// PracticeDays falls back to min(TotalCount/10, Streak).
type ProgressInput struct {
	TotalCount   int
	Streak       int
	PracticeDays *int
}

// Milestones returns the stored milestone list, initialising it from Catalog
// on first use and appending any catalog entries it is missing.
func (t *Tracker) Milestones() ([]store.Milestone, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.milestones()
}

func (t *Tracker) milestones() ([]store.Milestone, error) {
	stored, err := t.repo.ListMilestones()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(stored))
	for _, m := range stored {
		known[m.ID] = true
	}
	added := 0
	for _, def := range Catalog {
		if known[def.ID] {
			continue
		}
		m := def
		m.IsAchieved = false
		m.Progress = 0
		stored = append(stored, m)
		added++
	}
	if added > 0 {
		if err := t.repo.SaveMilestones(stored); err != nil {
			return nil, err
		}
	}
	return stored, nil
}

// UpdateProgress recomputes every milestone from in, persists the list and
// returns it together with the milestones achieved by this call.
func (t *Tracker) UpdateProgress(in ProgressInput) ([]store.Milestone, []store.Milestone, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	milestones, achieved, err := t.progress(in)
	if err != nil {
		return nil, nil, err
	}
	if err := t.repo.SaveMilestones(milestones); err != nil {
		return nil, nil, err
	}
	return milestones, achieved, nil
}

// progress computes the updated milestone list without persisting it.
func (t *Tracker) progress(in ProgressInput) ([]store.Milestone, []store.Milestone, error) {
	milestones, err := t.milestones()
	if err != nil {
		return nil, nil, err
	}

	// A provided PracticeDays wins even when it is zero.
	days := math.Min(float64(in.TotalCount)/10, float64(in.Streak))
	if in.PracticeDays != nil {
		days = float64(*in.PracticeDays)
	}

	var achieved []store.Milestone
	for i := range milestones {
		m := &milestones[i]
		ratio := milestoneRatio(*m, in, days)
		m.Progress = percent(ratio)
		if !m.IsAchieved && ratio >= 1 {
			m.IsAchieved = true
			achieved = append(achieved, *m)
			log.Info().Str("milestone", m.ID).Msg("milestone achieved")
		}
	}
	return milestones, achieved, nil
}

func milestoneRatio(m store.Milestone, in ProgressInput, days float64) float64 {
	switch {
	case m.RequiredCount > 0:
		return float64(in.TotalCount) / float64(m.RequiredCount)
	case m.RequiredStreak > 0:
		return float64(in.Streak) / float64(m.RequiredStreak)
	case m.RequiredDays > 0:
		return days / float64(m.RequiredDays)
	}
	return 0
}

// percent clamps ratio to [0, 1] and rounds it to a whole percentage, halves
// rounding up.
func percent(ratio float64) int {
	if ratio < 0 {
		ratio = 0
	}
	return int(math.Floor(math.Min(ratio, 1)*100 + 0.5))
}

// Next returns the unachieved milestone with the highest progress, earliest in
// catalog order on ties, or nil once everything is achieved.
func (t *Tracker) Next() (*store.Milestone, error) {
	milestones, err := t.Milestones()
	if err != nil {
		return nil, err
	}
	var open []store.Milestone
	for _, m := range milestones {
		if !m.IsAchieved {
			open = append(open, m)
		}
	}
	if len(open) == 0 {
		return nil, nil
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Progress > open[j].Progress
	})
	next := open[0]
	return &next, nil
}
