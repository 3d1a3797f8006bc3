package observability

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// JournalEvent is one line of the render journal
type JournalEvent struct {
	Type     string
	Session  string
	Action   string // e.g. "render", "replot"
	Status   string // "success", "failure"
	Metadata map[string]any
}

// Journal appends render outcomes as JSON lines. It is separate from the
// diagnostic log so that it can be kept when debug logging is off.
type Journal struct {
	logger zerolog.Logger
	mu     sync.Mutex
	file   *os.File
}

var (
	journalMu   sync.Mutex
	journalInst *Journal
)

// GetJournal returns the process journal. Until OpenJournal is called
// events are discarded.
func GetJournal() *Journal {
	journalMu.Lock()
	defer journalMu.Unlock()
	if journalInst == nil {
		journalInst = NewJournal(io.Discard)
	}
	return journalInst
}

// NewJournal creates a journal writing to w
func NewJournal(w io.Writer) *Journal {
	return &Journal{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// OpenJournal makes the process journal append to path
func OpenJournal(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	j := NewJournal(file)
	j.file = file

	journalMu.Lock()
	journalInst = j
	journalMu.Unlock()

	return j, nil
}

// Record writes one event
func (j *Journal) Record(event JournalEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := j.logger.Log().
		Str("type", event.Type).
		Str("action", event.Action).
		Str("status", event.Status)

	if event.Session != "" {
		entry.Str("session", event.Session)
	}
	if event.Metadata != nil {
		entry.Interface("metadata", event.Metadata)
	}

	entry.Msg("")
}

// Close closes the journal's file handle. A closed process journal is
// replaced by a discarding one.
func (j *Journal) Close() error {
	journalMu.Lock()
	if journalInst == j {
		journalInst = nil
	}
	journalMu.Unlock()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file != nil {
		err := j.file.Close()
		j.file = nil
		return err
	}
	return nil
}

// RecordRender journals the outcome of rendering one figure
func RecordRender(session, figure string, err error, metadata map[string]any) {
	event := JournalEvent{
		Type:     "figure",
		Session:  session,
		Action:   "render",
		Status:   "success",
		Metadata: map[string]any{"figure": figure},
	}
	for k, v := range metadata {
		event.Metadata[k] = v
	}
	if err != nil {
		event.Status = "failure"
		event.Metadata["error"] = err.Error()
	}
	GetJournal().Record(event)
}

// RecordReplot journals a watch-triggered replot of a data file
func RecordReplot(session, path string, err error) {
	event := JournalEvent{
		Type:     "watch",
		Session:  session,
		Action:   "replot",
		Status:   "success",
		Metadata: map[string]any{"path": path},
	}
	if err != nil {
		event.Status = "failure"
		event.Metadata["error"] = err.Error()
	}
	GetJournal().Record(event)
}
