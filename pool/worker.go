package pool

import (
	"context"

	"github.com/sirupsen/logrus"
)

type worker struct {
	id   int
	pool *Pool
	log  logrus.FieldLogger
}

func (w *worker) run() {
	defer w.pool.wg.Done()

	for {
		job, ok := w.pool.next()
		if !ok {
			w.log.Debug("queue is closed, worker exits")
			return
		}

		w.execute(job)
	}
}

// execute runs the job on the worker's own goroutine. A panicking job is logged and
// otherwise ignored, the worker carries on with the next one
func (w *worker) execute(job Job) {
	ctx := context.Background()
	w.pool.busy.Add(1)
	w.pool.inst.Busy.Add(ctx, 1)

	defer func() {
		w.pool.busy.Add(-1)
		w.pool.inst.Busy.Add(ctx, -1)

		if r := recover(); r != nil {
			w.pool.panicked.Add(1)
			w.pool.inst.Panicked.Add(ctx, 1)
			w.log.WithField("panic", r).Error("job panicked")

			return
		}

		w.pool.completed.Add(1)
		w.pool.inst.Completed.Add(ctx, 1)
	}()

	job()
}
