package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRateWait    time.Duration
	lastCallLatency time.Duration
}

type jobStats struct {
	jobs           int
	jobErrors      int
	teamsProcessed int
	teamsSkipped   int
	lastJobLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// fetch jobs. It is intentionally simple so it can be swapped for a real
// backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*endpointStats
	jobs  jobStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordAPICall increments counters for an upstream call and stores the last
// observed latency.
func (r *Recorder) RecordAPICall(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and
// stores the backoff wait applied in response.
func (r *Recorder) RecordRateLimit(endpoint string, wait time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.rateLimitHits++
	if wait > 0 {
		stats.lastRateWait = wait
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, wait)
	}
}

// RecordHTTPRequest counts an inbound HTTP request.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// RecordJob tracks a completed fetch job cycle.
func (r *Recorder) RecordJob(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.jobs.jobs++
	r.jobs.lastJobLatency = duration
	if err != nil {
		r.jobs.jobErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordJob(duration, err)
	}
}

// RecordTeamProcessed counts one team handled by the orchestrator; skipped
// marks teams bypassed because a checkpoint already covered them.
func (r *Recorder) RecordTeamProcessed(skipped bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if skipped {
		r.jobs.teamsSkipped++
	} else {
		r.jobs.teamsProcessed++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTeam(skipped)
	}
}

// EndpointSnapshot is a read-only view of per-endpoint stats.
type EndpointSnapshot struct {
	Calls         int
	Errors        int
	RateLimitHits int
	LastRateWait  time.Duration
	LastLatency   time.Duration
}

// JobSnapshot is a read-only view of job stats.
type JobSnapshot struct {
	Jobs           int
	JobErrors      int
	TeamsProcessed int
	TeamsSkipped   int
	LastJobLatency time.Duration
}

// Snapshot returns a copy of the stats for the given endpoint.
func (r *Recorder) Snapshot(endpoint string) EndpointSnapshot {
	if r == nil {
		return EndpointSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok {
		return EndpointSnapshot{}
	}
	return EndpointSnapshot{
		Calls:         stats.calls,
		Errors:        stats.errors,
		RateLimitHits: stats.rateLimitHits,
		LastRateWait:  stats.lastRateWait,
		LastLatency:   stats.lastCallLatency,
	}
}

// Jobs returns a copy of the job-level stats.
func (r *Recorder) Jobs() JobSnapshot {
	if r == nil {
		return JobSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return JobSnapshot{
		Jobs:           r.jobs.jobs,
		JobErrors:      r.jobs.jobErrors,
		TeamsProcessed: r.jobs.teamsProcessed,
		TeamsSkipped:   r.jobs.teamsSkipped,
		LastJobLatency: r.jobs.lastJobLatency,
	}
}

// APICalls returns the total attempts recorded for an endpoint.
func (r *Recorder) APICalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// APIErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) APIErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}
