// Package reminder keeps the practice reminder preferences and delivers the
// morning and evening reminders on schedule.
package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

const (
	StatusGranted = "granted"
	StatusDenied  = "denied"
	StatusPending = "pending"
	StatusDefault = "default"
)

const dateLayout = "2006-01-02"

// DefaultPreferences is what a user who never touched the reminder settings
// gets.
func DefaultPreferences() store.NotificationPrefs {
	return store.NotificationPrefs{
		Status:                   StatusPending,
		ReminderCount:            1,
		MorningTime:              "07:00",
		EveningTime:              "19:00",
		ShowDailyPermissionPopup: true,
	}
}

type Repository interface {
	GetNotificationPrefs() (*store.NotificationPrefs, error)
	SaveNotificationPrefs(p *store.NotificationPrefs) error
}

type Service struct {
	mu       sync.Mutex
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, now func() time.Time) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, notifier: notifier, now: now}
}

// Preferences returns the stored preferences, or the defaults when none are
// stored or the record is unreadable.
func (s *Service) Preferences() (store.NotificationPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) load() (store.NotificationPrefs, error) {
	p, err := s.repo.GetNotificationPrefs()
	switch {
	case errors.Is(err, store.ErrNotFound):
		return DefaultPreferences(), nil
	case errors.Is(err, store.ErrCorruptRecord):
		log.Warn().Err(err).Msg("notification preferences unreadable, using defaults")
		return DefaultPreferences(), nil
	case err != nil:
		return store.NotificationPrefs{}, err
	}
	return *p, nil
}

// Update applies fn to the current preferences and saves the result.
func (s *Service) Update(fn func(p *store.NotificationPrefs)) (store.NotificationPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(fn)
}

func (s *Service) update(fn func(p *store.NotificationPrefs)) (store.NotificationPrefs, error) {
	p, err := s.load()
	if err != nil {
		return p, err
	}
	fn(&p)
	if err := s.repo.SaveNotificationPrefs(&p); err != nil {
		return p, err
	}
	return p, nil
}

// ShouldShowPermissionPrompt reports whether to ask the user to enable
// reminders today: not yet granted, prompts not disabled and not already
// asked today.
func (s *Service) ShouldShowPermissionPrompt() (bool, error) {
	p, err := s.Preferences()
	if err != nil {
		return false, err
	}
	if p.Status == StatusGranted || !p.ShowDailyPermissionPopup {
		return false, nil
	}
	if p.LastPermissionPopupDate == s.now().Format(dateLayout) {
		return false, nil
	}
	return p.Status == StatusDenied || p.Status == StatusPending, nil
}

func (s *Service) MarkPermissionPromptShown() error {
	today := s.now().Format(dateLayout)
	_, err := s.Update(func(p *store.NotificationPrefs) {
		p.LastPermissionPopupDate = today
	})
	return err
}

// SetPermission records the user's answer to the permission prompt.
func (s *Service) SetPermission(granted bool) error {
	now := s.now()
	_, err := s.Update(func(p *store.NotificationPrefs) {
		p.Status = StatusDenied
		if granted {
			p.Status = StatusGranted
		}
		p.LastAsked = now.UnixMilli()
	})
	return err
}

// SendTest delivers a sample reminder. It reports false without delivering
// when reminders are not granted.
func (s *Service) SendTest() (bool, error) {
	p, err := s.Preferences()
	if err != nil {
		return false, err
	}
	if p.Status != StatusGranted {
		return false, nil
	}
	if err := s.notifier.Notify(Notification{Title: Title, Body: testBody, Test: true}); err != nil {
		return false, err
	}
	return true, nil
}

// SendReminder delivers the next message in the morning or evening rotation
// and advances the rotation.
func (s *Service) SendReminder(morning bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(morning)
}

func (s *Service) send(morning bool) (bool, error) {
	p, err := s.load()
	if err != nil {
		return false, err
	}
	if p.Status != StatusGranted {
		return false, nil
	}

	messages := messagesFor(morning)
	idx := p.MessageIndex % len(messages)
	if idx < 0 {
		idx = 0
	}
	n := Notification{Title: Title, Body: messages[idx], Morning: morning}
	if err := s.notifier.Notify(n); err != nil {
		return false, err
	}

	now := s.now()
	if _, err := s.update(func(p *store.NotificationPrefs) {
		p.LastNotified = now.UnixMilli()
		p.MessageIndex = idx + 1
	}); err != nil {
		return true, err
	}
	log.Info().Bool("morning", morning).Int("message", idx).Msg("reminder sent")
	return true, nil
}

// CheckSchedule sends the reminders whose time matches the current minute.
// A reminder already sent during this minute is not sent again, so calling
// it repeatedly is safe.
func (s *Service) CheckSchedule() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return 0, err
	}
	if p.Status != StatusGranted {
		return 0, nil
	}

	now := s.now()
	if p.LastNotified > 0 && sameMinute(time.UnixMilli(p.LastNotified), now) {
		return 0, nil
	}

	current := now.Format(layout24)
	sent := 0
	if p.MorningTime != "" && p.MorningTime == current {
		ok, err := s.send(true)
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	if p.ReminderCount == 2 && p.EveningTime != "" && p.EveningTime == current {
		ok, err := s.send(false)
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func sameMinute(a, b time.Time) bool {
	return a.In(b.Location()).Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

// Run checks the schedule once immediately and then every interval until ctx
// is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	log.Debug().Dur("interval", interval).Msg("reminder loop started")

	s.tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("reminder loop stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Service) tick() {
	if _, err := s.CheckSchedule(); err != nil {
		log.Error().Err(err).Msg("reminder check failed")
	}
}
