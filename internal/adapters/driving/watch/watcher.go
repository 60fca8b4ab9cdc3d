// Package watch ingests pasted text files dropped into an inbox directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialise.
var ErrWatcherFailed = errors.New("failed to initialise filesystem watcher")

// maxFileSize caps the size of an inbox file read for ingestion.
const maxFileSize = 4 << 20

// DefaultSettle is how long a file must go without events before it is ingested.
const DefaultSettle = 300 * time.Millisecond

// Report is the outcome of ingesting one inbox file.
type Report struct {
	// Path is the file that was ingested.
	Path string

	// Result is the ingestion result. Nil when Err is set.
	Result *domain.IngestResult

	// Err is set when the file could not be read or stored.
	Err error
}

// Watcher ingests .txt files created or rewritten in a directory.
// A burst of writes to one file is ingested once, after the file settles.
type Watcher struct {
	dir    string
	ingest driving.IngestService
	opts   domain.IngestOptions
	settle time.Duration
}

// New creates a watcher over dir.
func New(dir string, ingest driving.IngestService, opts domain.IngestOptions) *Watcher {
	return &Watcher{
		dir:    dir,
		ingest: ingest,
		opts:   opts,
		settle: DefaultSettle,
	}
}

// SetSettle changes the quiet period before a changed file is ingested.
// Non-positive values ingest on the first event.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// IngestExisting ingests the .txt files already in the directory, by name.
func (w *Watcher) IngestExisting(ctx context.Context) ([]Report, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading inbox %s: %w", w.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isInboxFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, w.ingestFile(ctx, filepath.Join(w.dir, name)))
	}
	return reports, nil
}

// Run watches the directory until ctx is cancelled, calling onReport after each file.
func (w *Watcher) Run(ctx context.Context, onReport func(Report)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Debug("watching %s for pasted text", w.dir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// pending holds the latest timer per path. A timer that fired before
	// it was replaced carries an old seq and is ignored.
	pending := make(map[string]pendingFile)
	settled := make(chan settledFile)
	seq := 0
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !wants(event) {
				continue
			}
			if p, ok := pending[event.Name]; ok {
				p.timer.Stop()
			}
			seq++
			fired := settledFile{event: event, seq: seq}
			timer := time.AfterFunc(w.settle, func() {
				select {
				case settled <- fired:
				case <-ctx.Done():
				}
			})
			pending[event.Name] = pendingFile{seq: seq, timer: timer}
		case f := <-settled:
			if p, ok := pending[f.event.Name]; !ok || p.seq != f.seq {
				continue
			}
			delete(pending, f.event.Name)
			if report, handled := w.handleEvent(ctx, f.event); handled && onReport != nil {
				onReport(report)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

type pendingFile struct {
	seq   int
	timer *time.Timer
}

type settledFile struct {
	event fsnotify.Event
	seq   int
}

// wants reports whether event is a create or write of an inbox file.
func wants(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return isInboxFile(filepath.Base(event.Name))
}

// handleEvent ingests the file named by a create or write event.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) (Report, bool) {
	if !wants(event) {
		return Report{}, false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return Report{}, false
	}
	if info.Size() == 0 {
		// Editors often create the file before writing it.
		return Report{}, false
	}

	return w.ingestFile(ctx, event.Name), true
}

func (w *Watcher) ingestFile(ctx context.Context, path string) Report {
	report := Report{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		report.Err = fmt.Errorf("stat %s: %w", path, err)
		return report
	}
	if info.Size() > maxFileSize {
		report.Err = fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrInvalidInput, path, maxFileSize)
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Err = fmt.Errorf("read %s: %w", path, err)
		return report
	}

	logger.Section("Watch: " + filepath.Base(path))
	result, err := w.ingest.Ingest(ctx, string(data), w.opts)
	if err != nil {
		report.Err = err
		return report
	}
	report.Result = result
	return report
}

// isInboxFile reports whether name is a visible .txt file.
func isInboxFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".txt")
}
