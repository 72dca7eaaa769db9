// Package metrics exposes sync engine metrics to Prometheus.
//
// Components depend on Recorder; Collector is the Prometheus implementation
// and Nop is used when metrics are not wired (tests, CLI runs).
package metrics
