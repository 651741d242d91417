package store

// Stats is the lifetime practice record. JSON names match the identity
// transfer format.
type Stats struct {
	TodayCount    int      `json:"todayCount"`
	TotalCount    int      `json:"totalCount"`
	Streak        int      `json:"streak"`
	LastChantDate string   `json:"lastChantDate"` // YYYY-MM-DD
	Achievements  []string `json:"achievements"`
	PracticeDays  *int     `json:"practiceDays,omitempty"`

	// DailyRecords is only populated inside export packages.
	DailyRecords []DailyRecord `json:"dailyRecords,omitempty"`
}

// HasAchievement reports whether tag is already unlocked.
func (s *Stats) HasAchievement(tag string) bool {
	for _, a := range s.Achievements {
		if a == tag {
			return true
		}
	}
	return false
}

// Days returns PracticeDays, treating an absent value as zero.
func (s *Stats) Days() int {
	if s.PracticeDays == nil {
		return 0
	}
	return *s.PracticeDays
}

type DailyRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Milestone is a long-term goal. Exactly one of RequiredCount,
// RequiredStreak and RequiredDays is non-zero.
type Milestone struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredCount  int    `json:"requiredCount,omitempty"`
	RequiredStreak int    `json:"requiredStreak,omitempty"`
	RequiredDays   int    `json:"requiredDays,omitempty"`
	IsAchieved     bool   `json:"isAchieved"`
	Progress       int    `json:"progress"` // 0-100
}

type ChallengeStatus struct {
	LastCompletedDaily   string // YYYY-MM-DD
	LastCompletedMonthly string // YYYY-MM
}

type Identity struct {
	SpiritualName string `json:"spiritualName"`
	SymbolID      int    `json:"symbolId"`
	UniqueID      string `json:"uniqueId"`
	CreationDate  int64  `json:"creationDate"` // unix milliseconds
}

type NotificationPrefs struct {
	Status                   string `json:"status"` // granted, denied, pending, default
	ReminderCount            int    `json:"reminderCount"`
	MorningTime              string `json:"morningTime,omitempty"`
	EveningTime              string `json:"eveningTime,omitempty"`
	LastNotified             int64  `json:"lastNotified,omitempty"`
	LastAsked                int64  `json:"lastAsked,omitempty"`
	MessageIndex             int    `json:"messageIndex"`
	TargetCount              int    `json:"targetCount,omitempty"`
	ShowDailyPermissionPopup bool   `json:"showDailyPermissionPopup"`
	LastPermissionPopupDate  string `json:"lastPermissionPopupDate"`
}

type Setting struct {
	Key   string
	Value string
}

// Settings is the typed view over the display and sound settings rows.
type Settings struct {
	Theme             string
	ColorScheme       string
	BackgroundSound   string
	CompletionChime   string
	Language          string
	FontSize          string
	AnimationsEnabled bool
	TargetCount       int
}
