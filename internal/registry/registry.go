// Package registry tracks chart render jobs in memory. Jobs are created by
// the API, advanced by status messages from the render workers, and queried
// by clients polling for their artifact.
package registry

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/gridmind-ai/gridmind/backend/pkg/common"
)

// Job is one chart render request and its lifecycle state.
type Job struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Status  string    `json:"status"`
	Key     string    `json:"key,omitempty"`
	Error   string    `json:"error,omitempty"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Registry holds jobs keyed by id.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func New() *Registry {
	return &Registry{
		jobs: make(map[string]Job),
	}
}

// Create registers a pending job for the given chart kind.
func (r *Registry) Create(kind string) (Job, error) {
	id, err := gonanoid.New()
	if err != nil {
		return Job{}, err
	}

	now := time.Now()
	job := Job{
		ID:      id,
		Kind:    kind,
		Status:  common.StatusPending,
		Created: now,
		Updated: now,
	}

	r.mu.Lock()
	r.jobs[id] = job
	r.mu.Unlock()

	return job, nil
}

// Get returns the job and whether it exists.
func (r *Registry) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]

	return job, ok
}

// SetRunning marks the job as picked up by a worker.
func (r *Registry) SetRunning(id string) {
	r.update(id, func(j *Job) {
		j.Status = common.StatusRunning
	})
}

// SetDone marks the job finished and records the artifact key.
func (r *Registry) SetDone(id, key string) {
	r.update(id, func(j *Job) {
		j.Status = common.StatusDone
		j.Key = key
		j.Error = ""
	})
}

// Delete removes the job and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.jobs[id]
	delete(r.jobs, id)

	return ok
}

// SetFailed marks the job failed with a reason.
func (r *Registry) SetFailed(id, reason string) {
	r.update(id, func(j *Job) {
		j.Status = common.StatusFailed
		j.Error = reason
	})
}

func (r *Registry) update(id string, fn func(*Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}

	fn(&job)
	job.Updated = time.Now()
	r.jobs[id] = job
}
