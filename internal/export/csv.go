// Package export writes the practice log and journey packages to files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/japa/internal/store"
)

const dateLayout = "2006-01-02"

// DailyRecordsToCSV writes one row per logged day, in the order given.
func DailyRecordsToCSV(records []store.DailyRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Weekday", "Count"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Date,
			weekday(r.Date),
			fmt.Sprintf("%d", r.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// weekday returns the English weekday name of a YYYY-MM-DD date, or "" if it
// does not parse.
func weekday(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
