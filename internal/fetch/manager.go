package fetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/logging"
	"github.com/fluxforgeai/rugby-union/internal/metrics"
)

// ErrJobRunning is returned by Start while another job is active. Jobs are
// rejected rather than queued.
var ErrJobRunning = errors.New("fetch: a job is already running")

// State is the lifecycle phase of a job.
type State string

const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// JobStatus is a point-in-time view of the current or most recent job.
type JobStatus struct {
	ID         string    `json:"id"`
	Job        Job       `json:"job"`
	State      State     `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
	Teams      int       `json:"teams,omitempty"`
	Players    int       `json:"players,omitempty"`
}

type runner interface {
	Run(ctx context.Context, job Job) (domain.Dataset, error)
}

// Manager enforces the single-active-job invariant and runs jobs on a
// background goroutine. The status of the last finished job stays readable
// until the next one starts.
type Manager struct {
	runner  runner
	logger  *slog.Logger
	metrics *metrics.Recorder
	baseCtx context.Context

	mu      sync.Mutex
	status  *JobStatus
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewManager wraps a runner. Jobs inherit from baseCtx so shutting the
// process down cancels whatever is in flight.
func NewManager(baseCtx context.Context, r runner, logger *slog.Logger, rec *metrics.Recorder) *Manager {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Manager{
		runner:  r,
		logger:  logger,
		metrics: rec,
		baseCtx: baseCtx,
	}
}

// Start launches a job in the background and returns its initial status.
func (m *Manager) Start(job Job) (JobStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return JobStatus{}, ErrJobRunning
	}

	ctx, cancel := context.WithCancel(m.baseCtx)
	status := JobStatus{
		ID:        uuid.NewString(),
		Job:       job,
		State:     StateRunning,
		StartedAt: time.Now().UTC(),
	}
	m.status = &status
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})

	logging.Info(m.logger, "fetch job started",
		logging.FieldJob, status.ID,
		logging.FieldCompetition, job.CompetitionID,
		logging.FieldSeason, job.SeasonID,
	)
	go m.run(ctx, status.ID, job)

	return status, nil
}

func (m *Manager) run(ctx context.Context, id string, job Job) {
	start := time.Now()
	dataset, err := m.runner.Run(ctx, job)
	m.metrics.RecordJob(time.Since(start), err)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Only the job that started this run may record its outcome.
	if m.status == nil || m.status.ID != id {
		return
	}
	m.status.FinishedAt = time.Now().UTC()
	if err != nil {
		m.status.State = StateFailed
		m.status.Error = err.Error()
		logging.Error(m.logger, "fetch job failed", err, logging.FieldJob, id)
	} else {
		m.status.State = StateCompleted
		m.status.Teams = dataset.TotalTeams
		m.status.Players = dataset.TotalPlayers
		logging.Info(m.logger, "fetch job finished",
			logging.FieldJob, id,
			"teams", dataset.TotalTeams,
			"players", dataset.TotalPlayers,
		)
	}
	m.running = false
	m.cancel = nil
	close(m.done)
}

// Status returns the current or last job status. The bool reports whether
// any job has run.
func (m *Manager) Status() (JobStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == nil {
		return JobStatus{}, false
	}
	return *m.status, true
}

// Running reports whether a job is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Stop cancels the active job, if any, and waits for it to settle.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	running := m.running
	m.mu.Unlock()

	if !running {
		return
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
