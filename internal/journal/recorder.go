package journal

import (
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/selection"
)

// Recorder is a selection.Observer that appends every change event to a
// journal. Invalid events are not recorded. Write failures are logged and
// collected in Err so the selection itself never fails.
type Recorder struct {
	path   string
	now    func() time.Time
	log    *zap.Logger
	source string

	mu  sync.Mutex
	err error
}

// NewRecorder returns a recorder for the journal at path. now defaults to
// time.Now and log to a no-op logger.
func NewRecorder(path string, now func() time.Time, log *zap.Logger) *Recorder {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{path: path, now: now, log: log}
}

// SetSource labels the records written until the next SetSource.
func (r *Recorder) SetSource(source string) {
	r.mu.Lock()
	r.source = source
	r.mu.Unlock()
}

// Notify implements selection.Observer. A nil recorder ignores events.
func (r *Recorder) Notify(e selection.Event) {
	if r == nil || e.Kind != selection.EventChange {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := FromEvent(e, r.now())
	rec.Source = r.source
	if err := Append(r.path, rec); err != nil {
		r.log.Error("Unable to write journal", zap.String("path", r.path), zap.Error(err))
		r.err = multierr.Append(r.err, err)
		return
	}
	r.log.Debug("Journaled change",
		zap.Stringer("target", e.Target),
		zap.String("iso", e.ISO),
		zap.String("compare", e.CompareISO))
}

// Err returns every write error seen so far.
func (r *Recorder) Err() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
