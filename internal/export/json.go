package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/store"
)

type journeyExport struct {
	ExportedAt   string              `json:"exported_at"`
	TotalCount   int                 `json:"total_count"`
	Streak       int                 `json:"streak"`
	PracticeDays int                 `json:"practice_days"`
	Achievements []string            `json:"achievements"`
	Count        int                 `json:"count"`
	Records      []store.DailyRecord `json:"records"`
}

// JourneyToJSON writes a readable summary of the stats and daily log. It is
// not importable; use PackageToJSON for transfers.
func JourneyToJSON(st *store.Stats, records []store.DailyRecord, path string) error {
	export := journeyExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		TotalCount:   st.TotalCount,
		Streak:       st.Streak,
		PracticeDays: st.Days(),
		Achievements: st.Achievements,
		Count:        len(records),
		Records:      records,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// PackageToJSON writes pkg to dir under its conventional file name and
// returns the full path. The file can be read back with
// identity.ReadPackageFile.
func PackageToJSON(pkg *identity.Package, dir string) (string, error) {
	if pkg == nil || pkg.Identity == nil {
		return "", identity.ErrMalformedPackage
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	path := filepath.Join(dir, pkg.FileName())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write json file: %w", err)
	}
	return path, nil
}
