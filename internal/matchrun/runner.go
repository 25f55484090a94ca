// Package matchrun runs scenarios in the background and tracks their
// lifecycle for the HTTP API: a match can take real wall-clock time to
// reach MAX_TICKS, so the API layer hands out a job ID immediately and
// lets callers poll status or subscribe to a live snapshot stream rather
// than blocking a request for the whole run.
package matchrun

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"orbitsim/internal/kernel"
	"orbitsim/internal/match"
	"orbitsim/internal/scenario"
)

// State is a job's coarse lifecycle stage, distinct from kernel.Status
// which only makes sense once a job reaches StateDone.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Job tracks one scenario run, in progress or finished.
type Job struct {
	ID       string
	Scenario string
	Seed     int64

	StartedAt time.Time

	mu       sync.RWMutex
	state    State
	result   match.Result
	err      error
	snapshot kernel.Snapshot
	haveSnap bool
}

func (j *Job) snapshotUpdate(s kernel.Snapshot) {
	j.mu.Lock()
	j.snapshot = s
	j.haveSnap = true
	j.mu.Unlock()
}

func (j *Job) finish(res match.Result, err error) {
	j.mu.Lock()
	j.result = res
	j.err = err
	if err != nil {
		j.state = StateError
	} else {
		j.state = StateDone
	}
	j.mu.Unlock()
}

// View is a consistent point-in-time read of a Job, safe to serialize.
type View struct {
	ID       string        `json:"id"`
	Scenario string        `json:"scenario"`
	Seed     int64         `json:"seed"`
	State    State         `json:"state"`
	Ticks    uint64        `json:"ticks"`
	Status   *kernel.Status `json:"status,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// View returns a snapshot of the job's current bookkeeping state.
func (j *Job) View() View {
	j.mu.RLock()
	defer j.mu.RUnlock()
	v := View{ID: j.ID, Scenario: j.Scenario, Seed: j.Seed, State: j.state, Ticks: j.result.Ticks}
	if j.state == StateDone {
		s := j.result.Status
		v.Status = &s
	}
	if j.err != nil {
		v.Error = j.err.Error()
	}
	return v
}

// LatestSnapshot returns the most recently captured live snapshot, if any.
func (j *Job) LatestSnapshot() (kernel.Snapshot, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.snapshot, j.haveSnap
}

// Manager owns the set of in-flight and completed jobs, enforcing a cap
// on concurrently running matches (resource-limits §SPEC_FULL AMBIENT
// STACK, mirrored from the sandbox's per-ship budget but at the
// whole-match granularity).
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	running  int
	maxLive  int
	nextID   uint64
	onSnap   func(jobID string, snap kernel.Snapshot)
	cadence  int
}

// NewManager constructs a job manager allowing at most maxConcurrent
// matches to run at once; snapshotCadence controls how often OnSnapshot
// fires during a live run.
func NewManager(maxConcurrent, snapshotCadence int) *Manager {
	return &Manager{
		jobs:    make(map[string]*Job),
		maxLive: maxConcurrent,
		cadence: snapshotCadence,
	}
}

// SetSnapshotHandler installs the callback invoked on every captured live
// snapshot, keyed by job ID. Typically wired to a WebSocket hub's
// broadcast method.
func (m *Manager) SetSnapshotHandler(fn func(jobID string, snap kernel.Snapshot)) {
	m.mu.Lock()
	m.onSnap = fn
	m.mu.Unlock()
}

// ErrTooManyMatches is returned by Start when the concurrent-match cap is
// already saturated.
var ErrTooManyMatches = fmt.Errorf("matchrun: too many concurrent matches")

// Start launches scenarioName in a new goroutine and returns its job
// immediately without waiting for completion.
func (m *Manager) Start(scenarioName string, seed int64) (*Job, error) {
	sc, err := scenario.Get(scenarioName)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.running >= m.maxLive {
		m.mu.Unlock()
		return nil, ErrTooManyMatches
	}
	id := fmt.Sprintf("m%d", atomic.AddUint64(&m.nextID, 1))
	job := &Job{ID: id, Scenario: scenarioName, Seed: seed, StartedAt: time.Now(), state: StatePending}
	m.jobs[id] = job
	m.running++
	cadence := m.cadence
	m.mu.Unlock()

	job.mu.Lock()
	job.state = StateRunning
	job.mu.Unlock()

	go func() {
		defer m.matchDone()
		res, _, err := match.RunWithOptions(sc, seed, match.Options{
			SnapshotCadence: cadence,
			OnSnapshot: func(s kernel.Snapshot) {
				job.snapshotUpdate(s)
				m.mu.Lock()
				hook := m.onSnap
				m.mu.Unlock()
				if hook != nil {
					hook(id, s)
				}
			},
		})
		job.finish(res, err)
	}()

	return job, nil
}

func (m *Manager) matchDone() {
	m.mu.Lock()
	m.running--
	m.mu.Unlock()
}

// Get returns a previously started job by ID.
func (m *Manager) Get(id string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	return j, ok
}

// RunningCount reports how many matches are currently in flight.
func (m *Manager) RunningCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
