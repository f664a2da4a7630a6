package curation

import "sync"

// RunState is the coordinator's per-gallery state.
type RunState string

const (
	RunIdle    RunState = "idle"
	RunRunning RunState = "running"
	// RunFailed marks the last run as failed; a new run may still start.
	RunFailed RunState = "failed"
)

// runLocks enforces at most one concurrent curation run per gallery. One
// lease record per gallery ID, guarded by a single mutex; leases are held for
// the run's lifetime and released on any terminal transition.
type runLocks struct {
	mu     sync.Mutex
	states map[string]RunState
}

func newRunLocks() *runLocks {
	return &runLocks{states: make(map[string]RunState)}
}

// acquire takes the lease for a gallery. It fails with ErrRunInProgress when
// a run is already running; a failed prior run does not block a retry.
func (l *runLocks) acquire(galleryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.states[galleryID] == RunRunning {
		return ErrRunInProgress
	}
	l.states[galleryID] = RunRunning
	return nil
}

// release ends the run, recording whether it failed.
func (l *runLocks) release(galleryID string, failed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if failed {
		l.states[galleryID] = RunFailed
		return
	}
	delete(l.states, galleryID)
}

// state reports the current run state for a gallery.
func (l *runLocks) state(galleryID string) RunState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.states[galleryID]; ok {
		return s
	}
	return RunIdle
}
