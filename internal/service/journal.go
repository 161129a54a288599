package service

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/calsource"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/journal"
)

// JournalService provides operations on the journal of committed changes.
type JournalService struct {
	path    string
	enabled bool
	keep    int
	now     func() time.Time
	log     *zap.Logger
}

// NewJournalService creates a JournalService for the journal at path.
func NewJournalService(path string, cfg config.JournalConfig, now func() time.Time, log *zap.Logger) *JournalService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{path: path, enabled: cfg.Enabled, keep: cfg.Keep, now: now, log: log}
}

// GetPath returns the journal file path.
func (s *JournalService) GetPath() string {
	return s.path
}

// Enabled reports whether pickers should record their changes.
func (s *JournalService) Enabled() bool {
	return s.enabled
}

// Recorder returns an observer that appends change events labeled with
// source, or nil when the journal is disabled.
func (s *JournalService) Recorder(source string) *journal.Recorder {
	if !s.enabled {
		return nil
	}
	r := journal.NewRecorder(s.path, s.now, s.log)
	r.SetSource(source)
	return r
}

// List returns the last limit records, oldest first. A limit of zero or
// less returns every record.
func (s *JournalService) List(limit int) (*JournalList, error) {
	result, err := journal.ReadWithWarnings(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	records := result.Records
	total := len(records)
	if limit > 0 && total > limit {
		records = records[total-limit:]
	}
	return &JournalList{Records: records, Warnings: result.Warnings, Total: total}, nil
}

// Last returns the most recent record.
func (s *JournalService) Last() (journal.Record, bool, error) {
	rec, ok, err := journal.Last(s.path)
	if err != nil {
		return rec, false, fmt.Errorf("failed to read journal: %w", err)
	}
	return rec, ok, nil
}

// Validate reports the health of the journal file.
func (s *JournalService) Validate() (journal.Health, error) {
	return journal.Validate(s.path)
}

// Prune keeps the newest keep records, backing the journal up first. A keep
// of zero or less uses the configured value; a configured value of zero
// keeps everything.
func (s *JournalService) Prune(keep int) (int, error) {
	if keep <= 0 {
		keep = s.keep
	}
	if keep <= 0 {
		return 0, nil
	}
	removed, err := journal.Prune(s.path, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	s.log.Info("Pruned journal", zap.String("path", s.path), zap.Int("removed", removed), zap.Int("kept", keep))
	return removed, nil
}

// Backups lists the journal backups.
func (s *JournalService) Backups() ([]journal.BackupInfo, error) {
	return journal.ListBackups(s.path)
}

// Restore replaces the journal with backup n.
func (s *JournalService) Restore(n int) error {
	if err := journal.RestoreBackup(s.path, n); err != nil {
		return fmt.Errorf("failed to restore backup %d: %w", n, err)
	}
	s.log.Info("Restored journal backup", zap.String("path", s.path), zap.Int("backup", n))
	return nil
}

// Export writes the last limit non-empty primary values as an iCalendar
// document.
func (s *JournalService) Export(w io.Writer, limit int) (int, error) {
	list, err := s.List(0)
	if err != nil {
		return 0, err
	}
	var selections []calsource.Selection
	for _, rec := range list.Records {
		v, err := rec.Value()
		if err != nil || v.IsZero() {
			continue
		}
		summary := "datepick selection"
		if rec.Source != "" {
			summary = "datepick " + rec.Source
		}
		selections = append(selections, calsource.Selection{Summary: summary, Value: v})
	}
	if limit > 0 && len(selections) > limit {
		selections = selections[len(selections)-limit:]
	}
	if err := calsource.Export(w, selections, s.now()); err != nil {
		return 0, err
	}
	return len(selections), nil
}
