// Package journal persists committed selection changes as JSON Lines.
//
// Each line is one Record. Reading is tolerant: malformed lines are
// reported as ParseWarnings and skipped, so a partially written or hand
// edited journal stays usable.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/osutil"
	"github.com/xolan/datepick/internal/selection"
)

// FileName is the journal file inside the application directory.
const FileName = "journal.jsonl"

// Record is one committed change.
type Record struct {
	Time       time.Time        `json:"time"`
	Target     selection.Target `json:"target"`
	ISO        string           `json:"iso"`
	CompareISO string           `json:"compare_iso,omitempty"`
	// Source describes what produced the change, e.g. "preset:Last Week".
	Source string `json:"source,omitempty"`
}

// Value parses the primary value. An empty ISO (a cleared selection) gives
// the zero Value.
func (r Record) Value() (calendar.Value, error) {
	if r.ISO == "" {
		return calendar.Value{}, nil
	}
	return calendar.ParseValue(r.ISO)
}

// FromEvent builds a record from a change event.
func FromEvent(e selection.Event, at time.Time) Record {
	return Record{Time: at, Target: e.Target, ISO: e.ISO, CompareISO: e.CompareISO}
}

// ParseWarning describes a line that could not be decoded.
type ParseWarning struct {
	LineNumber int    // 1-indexed
	Content    string // raw line
	Error      string
}

// ReadResult holds decoded records and warnings for skipped lines.
type ReadResult struct {
	Records  []Record
	Warnings []ParseWarning
}

// DefaultPath returns the journal path in the application directory.
func DefaultPath() (string, error) {
	return osutil.AppFile(FileName)
}

// Append adds r at the end of the journal, creating the file if needed.
func Append(path string, r Record) (err error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, file.Close()) }()

	line, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = file.Write(append(line, '\n'))
	return err
}

// ReadWithWarnings reads every record. A missing file is an empty journal.
func ReadWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{Records: []Record{}, Warnings: []ParseWarning{}}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		content := scanner.Text()
		if content == "" {
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(content), &r); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, r)
	}
	return result, scanner.Err()
}

// Read returns the decodable records, skipping malformed lines.
func Read(path string) ([]Record, error) {
	result, err := ReadWithWarnings(path)
	return result.Records, err
}

// Last returns the most recent record.
func Last(path string) (Record, bool, error) {
	records, err := Read(path)
	if err != nil || len(records) == 0 {
		return Record{}, false, err
	}
	return records[len(records)-1], true, nil
}

// Write replaces the journal with records. It writes a temporary file and
// renames it over path.
func Write(path string, records []Record) error {
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err = enc.Encode(r); err != nil {
			break
		}
	}
	if err == nil {
		err = w.Flush()
	}
	err = multierr.Append(err, file.Close())
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Prune keeps only the newest keep records, backing up the journal first.
// It returns the number of records removed.
func Prune(path string, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep count %d, must be zero or more", keep)
	}
	records, err := Read(path)
	if err != nil {
		return 0, err
	}
	removed := len(records) - keep
	if removed <= 0 {
		return 0, nil
	}
	if err := CreateBackup(path); err != nil {
		return 0, fmt.Errorf("backing up journal: %w", err)
	}
	if err := Write(path, records[removed:]); err != nil {
		return 0, err
	}
	return removed, nil
}

// Health summarizes the state of a journal file.
type Health struct {
	TotalLines     int
	ValidRecords   int
	CorruptRecords int
	Warnings       []ParseWarning
}

// Validate reports line counts and corrupted lines. A missing file is
// healthy and empty.
func Validate(path string) (Health, error) {
	health := Health{Warnings: []ParseWarning{}}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		health.TotalLines++
	}
	err = multierr.Append(scanner.Err(), file.Close())
	if err != nil {
		return health, err
	}

	result, err := ReadWithWarnings(path)
	if err != nil {
		return health, err
	}
	health.ValidRecords = len(result.Records)
	health.CorruptRecords = len(result.Warnings)
	health.Warnings = result.Warnings
	return health, nil
}
