// Package identity manages the local practitioner identity and moves a
// practice journey between installations as a checksummed package.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

// Repository is the identity persistence. *store.Store satisfies it.
type Repository interface {
	GetIdentity() (*store.Identity, error)
	SaveIdentity(id *store.Identity) error
	ResetJourney() error
}

// Practice is the stats side of a journey. *practice.Tracker satisfies it.
type Practice interface {
	Stats() (*store.Stats, error)
	DailyRecords() ([]store.DailyRecord, error)
	Replace(st store.Stats, records []store.DailyRecord) error
	Merge(fn func(current store.Stats) store.Stats) error
}

type Service struct {
	repo     Repository
	practice Practice
	now      func() time.Time
	rng      Rand
}

// NewService wires the identity store to the practice tracker. nil now and
// rng fall back to the wall clock and the global source.
func NewService(repo Repository, p Practice, now func() time.Time, rng Rand) *Service {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &Service{repo: repo, practice: p, now: now, rng: rng}
}

// Create stores a new identity, replacing any previous one. Stats are left
// alone; resetting them is a separate operation.
func (s *Service) Create(name string, symbolID int) (*store.Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := SymbolByID(symbolID); !ok {
		return nil, ErrUnknownSymbol
	}

	id := &store.Identity{
		SpiritualName: name,
		SymbolID:      symbolID,
		UniqueID:      GenerateUniqueID(name, s.rng),
		CreationDate:  s.now().UnixMilli(),
	}
	if err := s.repo.SaveIdentity(id); err != nil {
		return nil, err
	}
	log.Info().Str("unique_id", id.UniqueID).Msg("identity created")
	return id, nil
}

// Get returns ErrNoIdentity when none was created yet.
func (s *Service) Get() (*store.Identity, error) {
	id, err := s.repo.GetIdentity()
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoIdentity
	}
	return id, err
}

func (s *Service) Exists() (bool, error) {
	_, err := s.Get()
	if errors.Is(err, ErrNoIdentity) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.update(func(id *store.Identity) { id.SpiritualName = name })
}

func (s *Service) UpdateSymbol(symbolID int) error {
	if _, ok := SymbolByID(symbolID); !ok {
		return ErrUnknownSymbol
	}
	return s.update(func(id *store.Identity) { id.SymbolID = symbolID })
}

func (s *Service) update(fn func(id *store.Identity)) error {
	id, err := s.Get()
	if err != nil {
		return err
	}
	fn(id)
	return s.repo.SaveIdentity(id)
}

// Reset removes the identity together with stats, the daily log and
// milestone progress.
func (s *Service) Reset() error {
	if err := s.repo.ResetJourney(); err != nil {
		return err
	}
	log.Info().Msg("journey reset")
	return nil
}
