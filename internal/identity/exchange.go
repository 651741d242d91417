package identity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/store"
)

const (
	TokenPrefix    = "OM-IDENTITY:"
	PackageVersion = "1.0"
)

// Package is the transferable journey: identity, stats (with the daily log)
// and a checksum over the identity and lifetime count.
type Package struct {
	Identity *store.Identity `json:"identity"`
	Stats    *store.Stats    `json:"stats"`
	Version  string          `json:"version"`
	Checksum string          `json:"checksum"`
}

// FileName is the conventional name for a package written to disk.
func (p *Package) FileName() string {
	return "spiritual-journey-" + p.Identity.UniqueID + ".json"
}

// Checksum hashes uniqueId, creationDate and totalCount with a 32-bit
// rolling hash (h*31 + c over UTF-16 code units) and returns up to eight hex
// digits of its magnitude.
func Checksum(id store.Identity, totalCount int) string {
	s := id.UniqueID + strconv.FormatInt(id.CreationDate, 10) + strconv.Itoa(totalCount)

	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	mag := int64(h)
	if mag < 0 {
		mag = -mag
	}
	hex := strconv.FormatInt(mag, 16)
	return hex[:min(8, len(hex))]
}

// Verify checks the package is complete and its checksum matches.
func Verify(p *Package) error {
	if p == nil || p.Identity == nil || p.Stats == nil || p.Checksum == "" {
		return ErrMalformedPackage
	}
	if Checksum(*p.Identity, p.Stats.TotalCount) != p.Checksum {
		return ErrChecksumMismatch
	}
	return nil
}

// Export snapshots the current identity and stats. It fails with
// ErrNoIdentity when there is nothing to export.
func (s *Service) Export() (*Package, error) {
	id, err := s.Get()
	if err != nil {
		return nil, err
	}
	st, err := s.practice.Stats()
	if err != nil {
		return nil, err
	}
	records, err := s.practice.DailyRecords()
	if err != nil {
		return nil, err
	}
	st.DailyRecords = records
	if st.DailyRecords == nil {
		st.DailyRecords = []store.DailyRecord{}
	}

	return &Package{
		Identity: id,
		Stats:    st,
		Version:  PackageVersion,
		Checksum: Checksum(*id, st.TotalCount),
	}, nil
}

// ExportToken encodes Export as TokenPrefix + base64(JSON).
func (s *Service) ExportToken() (string, error) {
	p, err := s.Export()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode package: %w", err)
	}
	return TokenPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// ParseToken decodes a token produced by ExportToken. It returns nil for
// anything that is not a well-formed token; the checksum is checked on apply.
func ParseToken(token string) *Package {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, TokenPrefix) {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(token[len(TokenPrefix):])
	if err != nil {
		log.Debug().Err(err).Msg("identity token: bad base64")
		return nil
	}
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Msg("identity token: bad json")
		return nil
	}
	if p.Identity == nil || p.Stats == nil {
		return nil
	}
	return &p
}

// ReadPackageFile loads a package written by the file export.
func ReadPackageFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}
	if p.Identity == nil || p.Stats == nil || p.Checksum == "" {
		return nil, ErrMalformedPackage
	}
	return &p, nil
}

// ApplyReplace overwrites the local identity, stats and daily log with the
// package contents after verifying its checksum.
func (s *Service) ApplyReplace(p *Package) error {
	if err := Verify(p); err != nil {
		return err
	}
	if err := s.practice.Replace(*p.Stats, p.Stats.DailyRecords); err != nil {
		return err
	}
	id := *p.Identity
	if err := s.repo.SaveIdentity(&id); err != nil {
		return err
	}
	log.Info().Str("unique_id", id.UniqueID).Int("total", p.Stats.TotalCount).Msg("journey restored")
	return nil
}

// ApplyMerge folds the package stats into the local ones after verifying its
// checksum. The local identity and daily log are kept.
func (s *Service) ApplyMerge(p *Package) error {
	if err := Verify(p); err != nil {
		return err
	}
	imported := *p.Stats
	if err := s.practice.Merge(func(cur store.Stats) store.Stats {
		return MergeStats(cur, imported)
	}); err != nil {
		return err
	}
	log.Info().Str("from", p.Identity.UniqueID).Int("imported_total", imported.TotalCount).Msg("journeys merged")
	return nil
}

// MergeStats reconciles two stats records. Counts and practice days add up,
// so merging overlapping histories counts the overlap twice. The current
// lastChantDate is kept.
func MergeStats(cur, imp store.Stats) store.Stats {
	days := cur.Days() + imp.Days()

	achievements := append([]string{}, cur.Achievements...)
	for _, tag := range imp.Achievements {
		if !slices.Contains(achievements, tag) {
			achievements = append(achievements, tag)
		}
	}

	return store.Stats{
		TodayCount:    max(cur.TodayCount, imp.TodayCount),
		TotalCount:    cur.TotalCount + imp.TotalCount,
		Streak:        max(cur.Streak, imp.Streak),
		LastChantDate: cur.LastChantDate,
		Achievements:  achievements,
		PracticeDays:  &days,
	}
}
