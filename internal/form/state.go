// state.go - Observable form state store
//
// The form component keeps its five state cells in an explicit store
// with subscriber notification: every mutation publishes a snapshot, so
// views recompute from state instead of being told what changed.
package form

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schema-scout/backend/internal/models"
)

// OutputFormat selects the result rendering format.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// DefaultThreshold is the initial relevance threshold.
const DefaultThreshold = 0.1

// File is a selected schema file: its display name and raw content.
type File struct {
	Name    string
	Content []byte
}

// Phase is the component's lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is a snapshot of all form state cells.
type State struct {
	File         *File
	Query        string
	OutputFormat OutputFormat
	Threshold    float64

	Loading bool
	Err     string
	Result  models.ProcessingResult
}

// Phase derives the lifecycle state from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseFailure
	case s.Result != nil:
		return PhaseSuccess
	}
	return PhaseIdle
}

// Store owns the form state. All mutations go through setters that
// notify subscribers with the resulting snapshot.
type Store struct {
	mu    sync.Mutex
	state State

	subMu       sync.Mutex
	subscribers map[int]func(State)
	nextSub     int
}

// NewStore creates a store with default values.
func NewStore() *Store {
	return &Store{
		state: State{
			OutputFormat: FormatJSON,
			Threshold:    DefaultThreshold,
		},
		subscribers: make(map[int]func(State)),
	}
}

// Subscribe registers a callback invoked with a snapshot after every
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetFile selects a schema file. Selecting a file clears any existing
// error, matching the reset-on-reselect behavior of the form.
func (s *Store) SetFile(f *File) {
	s.mutate(func(st *State) {
		st.File = f
		st.Err = ""
	})
}

// SetFileFromPath loads a file from disk, applying the extension filter
// the file picker would apply (.json, .yaml, .yml).
func (s *Store) SetFileFromPath(path string) error {
	if !hasSchemaExtension(path) {
		return &UnsupportedFileError{Name: filepath.Base(path)}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.SetFile(&File{Name: filepath.Base(path), Content: content})
	return nil
}

// SetQuery updates the query text.
func (s *Store) SetQuery(query string) {
	s.mutate(func(st *State) {
		st.Query = query
	})
}

// SetOutputFormat updates the output format choice.
func (s *Store) SetOutputFormat(format OutputFormat) {
	s.mutate(func(st *State) {
		st.OutputFormat = format
	})
}

// SetThreshold updates the relevance threshold, clamped to [0,1] and
// rounded to the 0.1 step the slider exposes.
func (s *Store) SetThreshold(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	value = math.Round(value*10) / 10

	s.mutate(func(st *State) {
		st.Threshold = value
	})
}

// mutate applies fn under the lock and notifies subscribers with the
// resulting snapshot.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) notify(snapshot State) {
	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// UnsupportedFileError reports a file rejected by the extension filter.
type UnsupportedFileError struct {
	Name string
}

func (e *UnsupportedFileError) Error() string {
	return "unsupported file type: " + e.Name
}

func hasSchemaExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
