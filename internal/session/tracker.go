// Package session tracks the single in-flight analysis attempt. The upload
// surface allows one attempt at a time: a new attempt may begin only after
// the previous one resolved or errored, and resetting the session discards
// the last result entirely. Nothing is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chaiyareokput-tech/Finsi/internal/domain"
)

// Snapshot is a point-in-time view of the session state.
type Snapshot struct {
	Status    domain.SessionStatus   `json:"status"`
	AttemptID string                 `json:"attemptId,omitempty"`
	StartedAt *time.Time             `json:"startedAt,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Result    *domain.AnalysisResult `json:"result,omitempty"`
}

// Tracker serializes analysis attempts and holds the last outcome until the
// user resets the session.
type Tracker struct {
	mu        sync.Mutex
	status    domain.SessionStatus
	attemptID string
	startedAt time.Time
	lastErr   string
	result    *domain.AnalysisResult
}

// NewTracker creates an idle Tracker.
func NewTracker() *Tracker {
	return &Tracker{status: domain.SessionIdle}
}

// Begin marks a new attempt as in flight and returns its ID. It fails with
// ErrAnalysisInFlight while a previous attempt is still running.
func (t *Tracker) Begin() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == domain.SessionUploading {
		return "", domain.ErrAnalysisInFlight
	}
	t.status = domain.SessionUploading
	t.attemptID = uuid.New().String()
	t.startedAt = time.Now()
	t.lastErr = ""
	t.result = nil
	return t.attemptID, nil
}

// Succeed records a completed attempt and its result.
func (t *Tracker) Succeed(result *domain.AnalysisResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = domain.SessionSuccess
	t.result = result
}

// Fail records a failed attempt with its surfaced message.
func (t *Tracker) Fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = domain.SessionError
	t.lastErr = msg
}

// Reset discards the last outcome and returns the session to idle. Resetting
// an in-flight attempt is refused.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == domain.SessionUploading {
		return domain.ErrAnalysisInFlight
	}
	t.status = domain.SessionIdle
	t.attemptID = ""
	t.lastErr = ""
	t.result = nil
	return nil
}

// Snapshot returns the current session state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := Snapshot{
		Status:    t.status,
		AttemptID: t.attemptID,
		Error:     t.lastErr,
		Result:    t.result,
	}
	if !t.startedAt.IsZero() {
		started := t.startedAt
		snap.StartedAt = &started
	}
	return snap
}
