// Package metrics defines TRB's Prometheus instruments.
//
// All instruments register on the default registry; the app exposes them on
// GET /metrics via promhttp.
package metrics
