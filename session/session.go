// Package session manages independent dashboard sessions. Every
// session holds its own copy of the canonical dataset and derived
// state - nothing is shared across sessions, so no cross-session
// locking is needed.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"tagboard/pipeline"
	"tagboard/remediation"
	"tagboard/store"
	"tagboard/types"
)

// Session is one user's dashboard state: an independent clone of the
// canonical dataset, the current filter selections, and an optional
// remediation copy.
type Session struct {
	ID string

	mu         sync.Mutex
	dataset    *store.Dataset
	selections pipeline.Selections
	copy       *remediation.Copy
}

// Records returns the session's canonical records.
func (s *Session) Records() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset.Records
}

// Selections returns the current filter selections.
func (s *Session) Selections() pipeline.Selections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selections
}

// SetSelections replaces the filter selections. The filtered view is
// recomputed from scratch on every read; there is no incremental
// state to invalidate.
func (s *Session) SetSelections(sel pipeline.Selections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = sel
}

// Filtered returns the current filtered view.
func (s *Session) Filtered() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pipeline.Apply(s.dataset.Records, s.selections)
}

// StartRemediation builds a fresh remediation copy from the untagged
// subset of the current filtered view, replacing any previous copy.
func (s *Session) StartRemediation() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	untagged := pipeline.Untagged(pipeline.Apply(s.dataset.Records, s.selections))
	s.copy = remediation.NewCopy(untagged)
	return s.copy.Records()
}

// RemediationRecords returns the working copy's current rows.
func (s *Session) RemediationRecords() ([]types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copy == nil {
		return nil, ErrNoRemediation
	}
	return s.copy.Records(), nil
}

// EditRemediation sets one cell of the working copy.
func (s *Session) EditRemediation(row int, field types.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copy == nil {
		return ErrNoRemediation
	}
	return s.copy.SetField(row, field, value)
}

// AddRemediationRow appends a row to the working copy.
func (s *Session) AddRemediationRow(r types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copy == nil {
		return ErrNoRemediation
	}
	s.copy.AddRow(r)
	return nil
}

// RemoveRemediationRow deletes a row from the working copy.
func (s *Session) RemoveRemediationRow(row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copy == nil {
		return ErrNoRemediation
	}
	return s.copy.RemoveRow(row)
}

// RemediationComparison returns the before/after comparison.
func (s *Session) RemediationComparison() (remediation.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copy == nil {
		return remediation.Comparison{}, ErrNoRemediation
	}
	return s.copy.Compare(), nil
}

// ErrNoRemediation is returned when remediation operations run
// before StartRemediation.
var ErrNoRemediation = errors.New("remediation has not been started for this session")

// Manager issues sessions and keeps them isolated.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Open creates a session holding its own clone of the dataset.
func (m *Manager) Open(dataset *store.Dataset) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		dataset: dataset.Clone(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards a session and its remediation copy.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns how many sessions are open.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
