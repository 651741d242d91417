package practice

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/japa/internal/store"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(days int) { c.t = c.t.AddDate(0, 0, days) }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTracker(t *testing.T) (*Tracker, *store.Store, *testClock) {
	t.Helper()
	s := newTestStore(t)
	c := &testClock{t: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	return NewTracker(s, c.now), s, c
}

func mustIncrement(t *testing.T, tr *Tracker, n int) *Result {
	t.Helper()
	res, err := tr.Increment(n)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	return res
}

// ============================================================
// Stats read and rollover
// ============================================================

func TestStatsInitialisedOnFirstRead(t *testing.T) {
	tr, s, c := newTestTracker(t)

	st, err := tr.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.TodayCount != 0 || st.TotalCount != 0 || st.Streak != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
	if st.LastChantDate != c.now().Format(DateLayout) {
		t.Fatalf("LastChantDate = %q, want today", st.LastChantDate)
	}
	if st.Days() != 0 {
		t.Fatalf("expected 0 practice days, got %d", st.Days())
	}

	// Persisted immediately.
	if _, err := s.GetStats(); err != nil {
		t.Fatalf("stats should be persisted on first read: %v", err)
	}
}

func TestRolloverResetsTodayCount(t *testing.T) {
	tr, _, c := newTestTracker(t)
	mustIncrement(t, tr, 5)

	c.advance(1)
	st, err := tr.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.TodayCount != 0 {
		t.Fatalf("todayCount should reset on a new day, got %d", st.TodayCount)
	}
	if st.TotalCount != 5 {
		t.Fatalf("totalCount should survive rollover, got %d", st.TotalCount)
	}
	if st.Streak != 1 {
		t.Fatalf("streak should be kept after exactly one day, got %d", st.Streak)
	}
	if st.LastChantDate != c.now().Format(DateLayout) {
		t.Fatal("lastChantDate should move to today")
	}
}

func TestRolloverBreaksStreakAfterGap(t *testing.T) {
	tr, _, c := newTestTracker(t)
	mustIncrement(t, tr, 1)
	c.advance(1)
	mustIncrement(t, tr, 1)

	c.advance(3)
	st, _ := tr.Stats()
	if st.Streak != 0 {
		t.Fatalf("streak should reset after a 3 day gap, got %d", st.Streak)
	}

	res := mustIncrement(t, tr, 1)
	if res.Stats.Streak != 1 {
		t.Fatalf("first increment after a gap should regrow streak to 1, got %d", res.Stats.Streak)
	}
}

func TestPracticeDaysBackfilledFromLog(t *testing.T) {
	tr, s, c := newTestTracker(t)
	today := c.now().Format(DateLayout)

	seed := &store.Stats{TotalCount: 30, LastChantDate: today, Achievements: []string{}}
	err := s.SavePractice(seed, []store.DailyRecord{
		{Date: "2026-03-08", Count: 10},
		{Date: "2026-03-09", Count: 10},
		{Date: today, Count: 10},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	st, err := tr.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.PracticeDays == nil || *st.PracticeDays != 3 {
		t.Fatalf("expected practiceDays backfilled to 3, got %v", st.PracticeDays)
	}
}

type corruptOnce struct {
	*store.Store
	done bool
}

func (c *corruptOnce) GetStats() (*store.Stats, error) {
	if !c.done {
		c.done = true
		return nil, store.ErrCorruptRecord
	}
	return c.Store.GetStats()
}

func TestCorruptStatsReinitialised(t *testing.T) {
	s := newTestStore(t)
	s.SaveStats(&store.Stats{TotalCount: 99, LastChantDate: "2026-03-10", Achievements: []string{}})

	tr := NewTracker(&corruptOnce{Store: s}, func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	})
	st, err := tr.Stats()
	if err != nil {
		t.Fatalf("corrupt record should not be fatal: %v", err)
	}
	if st.TotalCount != 0 {
		t.Fatalf("corrupt record should be reinitialised, got total %d", st.TotalCount)
	}
}

// ============================================================
// Increment
// ============================================================

func TestIncrementSameDay(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	for i := 0; i < 5; i++ {
		mustIncrement(t, tr, 1)
	}
	st, _ := tr.Stats()
	if st.TodayCount != 5 || st.TotalCount != 5 {
		t.Fatalf("expected 5/5, got today=%d total=%d", st.TodayCount, st.TotalCount)
	}
	if st.Streak != 1 {
		t.Fatalf("first practice day should give streak 1, got %d", st.Streak)
	}
	if st.Days() != 1 {
		t.Fatalf("expected 1 practice day, got %d", st.Days())
	}

	records, _ := tr.DailyRecords()
	if len(records) != 1 || records[0].Count != 5 {
		t.Fatalf("expected one record with count 5, got %+v", records)
	}
}

func TestIncrementRejectsNonPositive(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	for _, n := range []int{0, -3} {
		if _, err := tr.Increment(n); !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("Increment(%d): expected ErrInvalidCount, got %v", n, err)
		}
	}
}

func TestStreakGrowsOncePerDay(t *testing.T) {
	tr, _, c := newTestTracker(t)

	for day := 1; day <= 3; day++ {
		mustIncrement(t, tr, 1)
		res := mustIncrement(t, tr, 1)
		if res.Stats.Streak != day {
			t.Fatalf("day %d: streak = %d", day, res.Stats.Streak)
		}
		c.advance(1)
	}
}

func TestStreakGrowsAfterEarlierReadSameDay(t *testing.T) {
	tr, _, c := newTestTracker(t)
	mustIncrement(t, tr, 1)

	c.advance(1)
	// A dashboard read rolls the day over before the first repetition.
	tr.Stats()
	res := mustIncrement(t, tr, 1)
	if res.Stats.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", res.Stats.Streak)
	}
}

func TestStreakNotCarriedOverIdleDay(t *testing.T) {
	tr, _, c := newTestTracker(t)
	mustIncrement(t, tr, 1)

	c.advance(1)
	tr.Stats() // opened the app but did not practice
	c.advance(1)

	res := mustIncrement(t, tr, 1)
	if res.Stats.Streak != 1 {
		t.Fatalf("a day without practice should break the streak, got %d", res.Stats.Streak)
	}
}

func TestDailyLogBounded(t *testing.T) {
	tr, _, c := newTestTracker(t)
	start := c.now()

	for i := 0; i < 40; i++ {
		mustIncrement(t, tr, 2)
		c.advance(1)
	}

	records, err := tr.DailyRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != MaxDailyRecords {
		t.Fatalf("expected %d records, got %d", MaxDailyRecords, len(records))
	}
	if records[0].Date != start.AddDate(0, 0, 39).Format(DateLayout) {
		t.Fatalf("newest record = %s", records[0].Date)
	}
	if records[29].Date != start.AddDate(0, 0, 10).Format(DateLayout) {
		t.Fatalf("oldest kept record = %s", records[29].Date)
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Date <= records[i].Date {
			t.Fatal("records should be sorted newest first")
		}
	}

	st, _ := tr.Stats()
	if st.Days() != 40 {
		t.Fatalf("practiceDays counts every practice day, got %d", st.Days())
	}
	if st.Streak != 40 {
		t.Fatalf("expected 40 day streak, got %d", st.Streak)
	}
}

func TestIncrementUnlocksAchievementsOnce(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	res := mustIncrement(t, tr, 108)
	if len(res.NewAchievements) != 1 || res.NewAchievements[0] != "108_TOTAL" {
		t.Fatalf("expected 108_TOTAL, got %v", res.NewAchievements)
	}
	var ids []string
	for _, m := range res.NewMilestones {
		ids = append(ids, m.ID)
	}
	if len(ids) != 2 || ids[0] != "FIRST_STEP" || ids[1] != "SACRED_108" {
		t.Fatalf("unexpected new milestones: %v", ids)
	}

	res = mustIncrement(t, tr, 1)
	if len(res.NewAchievements) != 0 || len(res.NewMilestones) != 0 {
		t.Fatalf("nothing new expected, got %v / %v", res.NewAchievements, res.NewMilestones)
	}

	st, _ := tr.Stats()
	if !st.HasAchievement("108_TOTAL") {
		t.Fatal("achievement should be persisted")
	}
}

func TestIncrementPersistsMilestones(t *testing.T) {
	tr, s, _ := newTestTracker(t)
	mustIncrement(t, tr, 54)

	stored, err := s.ListMilestones()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(Catalog) {
		t.Fatalf("expected %d milestones, got %d", len(Catalog), len(stored))
	}
	for _, m := range stored {
		if m.ID == "SACRED_108" && m.Progress != 50 {
			t.Fatalf("SACRED_108 progress = %d, want 50", m.Progress)
		}
	}
}

// ============================================================
// Replace / Merge
// ============================================================

func TestReplaceOverwritesStatsAndLog(t *testing.T) {
	tr, _, c := newTestTracker(t)
	mustIncrement(t, tr, 3)

	today := c.now().Format(DateLayout)
	days := 2
	err := tr.Replace(store.Stats{
		TodayCount:    7,
		TotalCount:    500,
		Streak:        2,
		LastChantDate: today,
		Achievements:  []string{"108_TOTAL"},
		PracticeDays:  &days,
	}, []store.DailyRecord{{Date: "2026-03-09", Count: 493}, {Date: today, Count: 7}})
	if err != nil {
		t.Fatal(err)
	}

	st, _ := tr.Stats()
	if st.TotalCount != 500 || st.TodayCount != 7 || st.Streak != 2 {
		t.Fatalf("unexpected stats after replace: %+v", st)
	}
	records, _ := tr.DailyRecords()
	if len(records) != 2 || records[0].Date != today {
		t.Fatalf("unexpected records after replace: %+v", records)
	}
}

func TestMergeKeepsDailyLog(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	mustIncrement(t, tr, 3)

	err := tr.Merge(func(cur store.Stats) store.Stats {
		cur.TotalCount += 1000
		return cur
	})
	if err != nil {
		t.Fatal(err)
	}
	st, _ := tr.Stats()
	if st.TotalCount != 1003 {
		t.Fatalf("expected 1003, got %d", st.TotalCount)
	}
	if !st.HasAchievement("108_TOTAL") {
		t.Fatal("merge should evaluate achievements")
	}
	records, _ := tr.DailyRecords()
	if len(records) != 1 || records[0].Count != 3 {
		t.Fatalf("merge must not touch the daily log: %+v", records)
	}
}
