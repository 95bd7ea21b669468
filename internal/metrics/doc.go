/*
Package metrics exposes Prometheus metrics for the overlay engine.

Each Metrics value owns its own registry, so several engines (or tests) can
coexist in one process. All recording methods are safe on a nil *Metrics,
which lets components take metrics as an optional dependency.

	m := metrics.New()
	http.Handle("/metrics", m.Handler())
	m.ObservePoll(nil)
*/
package metrics
