// Package metrics records operational metrics for a pipeline run behind a
// pluggable, process-wide Backend.
//
// The default backend is a no-op, so every Record* helper is always safe to
// call. Concrete systems live in subpackages (prompush, datadog) and are
// installed once at startup with SetBackend.
//
// Metric names:
//
//	etl_step_total{job,step,status}             counter
//	etl_step_duration_seconds{job,step,status}  histogram/summary
//	etl_records_total{job,kind}                 counter (extracted, loaded, ...)
//	etl_batches_total{job}                      counter
//	etl_missing_values{job,column}              gauge
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// SetGauge sets a point-in-time value.
	SetGauge(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) SetGauge(string, float64, Labels)         {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// Step status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// RecordStep counts one execution of a pipeline stage and observes its
// duration, labeled with the outcome.
func RecordStep(job, step string, err error, d time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("etl_step_total", 1, lbls)
	backend.ObserveHistogram("etl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRow increments the record counter for job and kind. Kinds used by
// the pipeline are "extracted" and "loaded". Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches increments the batch counter for job.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_batches_total", float64(delta), Labels{
		"job": job,
	})
}

// RecordMissing reports how many values of column were missing after
// coercion. Zero is reported too.
func RecordMissing(job, column string, n int) {
	backend.SetGauge("etl_missing_values", float64(n), Labels{
		"job":    job,
		"column": column,
	})
}
