package practice

import (
	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

// Achievement is a one-time tag unlocked by a lifetime-count or streak
// threshold. Exactly one of TotalCount and Streak is set.
type Achievement struct {
	Tag        string
	Title      string
	TotalCount int
	Streak     int
}

// Achievements is the fixed threshold table, in evaluation order.
var Achievements = []Achievement{
	{Tag: "108_TOTAL", Title: "108 mantras", TotalCount: 108},
	{Tag: "1008_TOTAL", Title: "1,008 mantras", TotalCount: 1008},
	{Tag: "10008_TOTAL", Title: "10,008 mantras", TotalCount: 10008},
	{Tag: "7_DAYS_STREAK", Title: "7 day streak", Streak: 7},
	{Tag: "21_DAYS_STREAK", Title: "21 day streak", Streak: 21},
	{Tag: "108_DAYS_STREAK", Title: "108 day streak", Streak: 108},
}

func (a Achievement) met(st *store.Stats) bool {
	if a.TotalCount > 0 {
		return st.TotalCount >= a.TotalCount
	}
	return st.Streak >= a.Streak
}

// AchievementByTag looks up a table entry.
func AchievementByTag(tag string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.Tag == tag {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate appends every newly met achievement to st.Achievements and returns
// the new tags in table order. A second call with the same stats returns nil.
func Evaluate(st *store.Stats) []string {
	var unlocked []string
	for _, a := range Achievements {
		if a.met(st) && !st.HasAchievement(a.Tag) {
			unlocked = append(unlocked, a.Tag)
		}
	}
	if len(unlocked) > 0 {
		st.Achievements = append(st.Achievements, unlocked...)
		log.Info().Strs("tags", unlocked).Msg("achievements unlocked")
	}
	return unlocked
}
