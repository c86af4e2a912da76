package telemetry

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PoolInstruments are recorded by the worker pool
type PoolInstruments struct {
	Submitted metric.Int64Counter
	Dropped   metric.Int64Counter
	Completed metric.Int64Counter
	Panicked  metric.Int64Counter
	Busy      metric.Int64UpDownCounter
}

func NewPoolInstruments(meter metric.Meter) (PoolInstruments, error) {
	var (
		inst PoolInstruments
		errs [5]error
	)

	inst.Submitted, errs[0] = meter.Int64Counter("workhttp.pool.jobs.submitted",
		metric.WithDescription("Jobs accepted into the queue"),
		metric.WithUnit("{job}"))
	inst.Dropped, errs[1] = meter.Int64Counter("workhttp.pool.jobs.dropped",
		metric.WithDescription("Jobs rejected because the pool was shut down"),
		metric.WithUnit("{job}"))
	inst.Completed, errs[2] = meter.Int64Counter("workhttp.pool.jobs.completed",
		metric.WithDescription("Jobs that returned normally"),
		metric.WithUnit("{job}"))
	inst.Panicked, errs[3] = meter.Int64Counter("workhttp.pool.jobs.panicked",
		metric.WithDescription("Jobs that panicked and were recovered by a worker"),
		metric.WithUnit("{job}"))
	inst.Busy, errs[4] = meter.Int64UpDownCounter("workhttp.pool.workers.busy",
		metric.WithDescription("Workers currently executing a job"),
		metric.WithUnit("{worker}"))

	return inst, errors.Join(errs[:]...)
}

// RequestInstruments are recorded by the connection dispatcher
type RequestInstruments struct {
	Requests metric.Int64Counter
}

func NewRequestInstruments(meter metric.Meter) (RequestInstruments, error) {
	requests, err := meter.Int64Counter("workhttp.requests",
		metric.WithDescription("Responses written, by status code"),
		metric.WithUnit("{request}"))

	return RequestInstruments{Requests: requests}, err
}

// StatusAttr is the attribute every request recording carries
func StatusAttr(code int) metric.MeasurementOption {
	return metric.WithAttributes(attribute.Int("status", code))
}
