package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/example/garland/internal/core/fault"
)

// DefaultLockTimeout bounds how long a command waits for its deployment
// before giving up with a retryable Busy fault. Callers are short-lived
// HTTP requests; they retry rather than queue.
const DefaultLockTimeout = 3 * time.Second

// DeploymentLocker serializes mutating commands per deployment. The full
// per-deployment state (zones, sessions, connections, totes) is one unit of
// mutual exclusion: every check-then-write sequence (one open session per
// zone, one allocation per port) runs under this lock. Reads go around it
// and may be momentarily stale.
type DeploymentLocker struct {
	mu      sync.Mutex
	sems    map[string]*semaphore.Weighted
	timeout time.Duration
}

// NewDeploymentLocker creates a locker with the given acquisition timeout.
// A non-positive timeout falls back to DefaultLockTimeout.
func NewDeploymentLocker(timeout time.Duration) *DeploymentLocker {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &DeploymentLocker{
		sems:    make(map[string]*semaphore.Weighted),
		timeout: timeout,
	}
}

// Acquire takes the deployment's exclusive lock, waiting at most the
// configured timeout. On success the returned release function must be
// called exactly once. On timeout it returns a Busy fault.
func (l *DeploymentLocker) Acquire(ctx context.Context, deploymentID string) (func(), error) {
	l.mu.Lock()
	sem, ok := l.sems[deploymentID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.sems[deploymentID] = sem
	}
	l.mu.Unlock()

	acquireCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if err := sem.Acquire(acquireCtx, 1); err != nil {
		return nil, fault.New(fault.KindBusy, deploymentID,
			"deployment %s is busy, retry shortly", deploymentID)
	}

	var once sync.Once
	return func() {
		once.Do(func() { sem.Release(1) })
	}, nil
}
