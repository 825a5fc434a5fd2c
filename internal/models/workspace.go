package models

import (
	"fmt"
	"sync"
)

const (
	StatusReady   = "Ready"
	maxDebugItems = 100
)

// DebugEntry records the source and output of one run.
type DebugEntry struct {
	JobID  string
	Code   string
	Output string
}

func (e DebugEntry) String() string {
	return fmt.Sprintf("Code: %s\nOutput: %s\n", e.Code, e.Output)
}

// Snapshot is an immutable copy of the workspace handed to listeners.
type Snapshot struct {
	Buffer     string
	Language   string
	Status     string
	Path       string
	AllowShell bool
	Running    bool
	Debug      []DebugEntry
}

// Listener is notified after every change.
type Listener func(Snapshot)

// Workspace is the editor's single mutable state: the buffer, the selected
// language and the status line.
type Workspace struct {
	mu         sync.RWMutex
	buffer     string
	language   string
	status     string
	path       string
	allowShell bool
	running    bool
	debug      []DebugEntry

	listenerMu sync.Mutex
	listeners  []Listener
}

func NewWorkspace(defaultLanguage string) *Workspace {
	return &Workspace{
		language: defaultLanguage,
		status:   StatusReady,
	}
}

func (w *Workspace) Subscribe(l Listener) {
	w.listenerMu.Lock()
	w.listeners = append(w.listeners, l)
	w.listenerMu.Unlock()
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() Snapshot {
	debug := make([]DebugEntry, len(w.debug))
	copy(debug, w.debug)
	return Snapshot{
		Buffer:     w.buffer,
		Language:   w.language,
		Status:     w.status,
		Path:       w.path,
		AllowShell: w.allowShell,
		Running:    w.running,
		Debug:      debug,
	}
}

// update applies fn under the lock and then notifies listeners outside it.
func (w *Workspace) update(fn func()) {
	w.mu.Lock()
	fn()
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.listenerMu.Lock()
	listeners := make([]Listener, len(w.listeners))
	copy(listeners, w.listeners)
	w.listenerMu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (w *Workspace) Buffer() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.buffer
}

// SetBuffer records edits typed into the editor.
func (w *Workspace) SetBuffer(text string) {
	w.update(func() { w.buffer = text })
}

// ReplaceBuffer swaps in the contents of an opened file.
func (w *Workspace) ReplaceBuffer(text, path, status string) {
	w.update(func() {
		w.buffer = text
		w.path = path
		w.status = status
	})
}

// Reset clears the buffer for a new file.
func (w *Workspace) Reset() {
	w.update(func() {
		w.buffer = ""
		w.path = ""
		w.status = StatusReady
	})
}

func (w *Workspace) Language() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.language
}

func (w *Workspace) SetLanguage(language string) {
	w.update(func() { w.language = language })
}

func (w *Workspace) Status() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// SetStatus overwrites the status line.
func (w *Workspace) SetStatus(status string) {
	w.update(func() { w.status = status })
}

// SetSaved records the path the buffer was written to.
func (w *Workspace) SetSaved(path, status string) {
	w.update(func() {
		w.path = path
		w.status = status
	})
}

func (w *Workspace) Path() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.path
}

func (w *Workspace) AllowShell() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.allowShell
}

func (w *Workspace) SetAllowShell(allow bool) {
	w.update(func() { w.allowShell = allow })
}

func (w *Workspace) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// BeginRun marks a run as active. It reports false if one already is.
func (w *Workspace) BeginRun(status string) bool {
	started := false
	w.update(func() {
		if w.running {
			return
		}
		w.running = true
		w.status = status
		started = true
	})
	return started
}

// FinishRun clears the running flag, sets the outcome status and appends
// a debug entry in one change.
func (w *Workspace) FinishRun(status string, entry DebugEntry) {
	w.update(func() {
		w.running = false
		w.status = status
		w.debug = append(w.debug, entry)
		if len(w.debug) > maxDebugItems {
			w.debug = w.debug[len(w.debug)-maxDebugItems:]
		}
	})
}

func (w *Workspace) DebugLog() []DebugEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	debug := make([]DebugEntry, len(w.debug))
	copy(debug, w.debug)
	return debug
}
