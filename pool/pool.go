// Package pool implements a fixed-size set of workers executing jobs from a single
// shared queue. Workers are spawned once, in New, and live until Shutdown.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/workhttp/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// Job is an opaque unit of work. The pool never looks inside
type Job func()

var (
	ErrNonPositiveSize = errors.New("pool size must be at least 1")
	ErrClosed          = errors.New("pool is shut down")
	ErrNilJob          = errors.New("job must not be nil")
)

// Stats is a snapshot of the pool counters
type Stats struct {
	Workers   int   `json:"workers"`
	Queued    int   `json:"queued"`
	Busy      int64 `json:"busy"`
	Submitted int64 `json:"submitted"`
	Dropped   int64 `json:"dropped"`
	Completed int64 `json:"completed"`
	Panicked  int64 `json:"panicked"`
}

type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool

	workers []*worker
	wg      sync.WaitGroup
	once    sync.Once

	log  logrus.FieldLogger
	inst telemetry.PoolInstruments

	busy, submitted, dropped, completed, panicked atomic.Int64
}

// New starts size workers, all of them waiting on the same queue. A nil logger falls
// back to the logrus standard logger
func New(size int, log logrus.FieldLogger) (*Pool, error) {
	if size < 1 {
		return nil, ErrNonPositiveSize
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	log = log.WithField("component", "pool")

	inst, err := telemetry.NewPoolInstruments(telemetry.Meter())
	if err != nil {
		log.WithError(err).Warn("cannot create pool instruments, recording nothing")
		inst, _ = telemetry.NewPoolInstruments(telemetry.Noop())
	}

	p := &Pool{
		workers: make([]*worker, size),
		log:     log,
		inst:    inst,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := range p.workers {
		p.workers[i] = &worker{
			id:   i,
			pool: p,
			log:  log.WithField("worker", i),
		}
		go p.workers[i].run()
	}

	log.WithField("workers", size).Debug("pool started")

	return p, nil
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return len(p.workers)
}

// Submit enqueues the job to be executed by whichever worker becomes idle first. It never
// blocks on a busy pool. After Shutdown has begun the job is dropped, logged and ErrClosed
// is returned.
func (p *Pool) Submit(job Job) error {
	if job == nil {
		return ErrNilJob
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.dropped.Add(1)
		p.inst.Dropped.Add(context.Background(), 1)
		p.log.Warn("job submitted after shutdown, dropping it")

		return ErrClosed
	}

	p.queue = append(p.queue, job)
	p.mu.Unlock()
	p.cond.Signal()

	p.submitted.Add(1)
	p.inst.Submitted.Add(context.Background(), 1)

	return nil
}

// Shutdown stops accepting new jobs, lets every already queued job run to completion and
// waits until all the workers have exited. Repeated and concurrent calls are safe: all of
// them return only after the workers are gone.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.cond.Broadcast()

		p.wg.Wait()
		p.log.Info("pool is shut down")
	})
}

// Stats returns current counters
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	queued := len(p.queue)
	p.mu.Unlock()

	return Stats{
		Workers:   len(p.workers),
		Queued:    queued,
		Busy:      p.busy.Load(),
		Submitted: p.submitted.Load(),
		Dropped:   p.dropped.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

// next blocks until there's a job or the pool is closed and drained. In the latter
// case false is returned
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}

	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	return job, true
}
