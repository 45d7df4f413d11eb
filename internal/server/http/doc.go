// Package httpserver serves killbot's admin endpoints: /v1/healthz,
// /v1/statusz (store stats), and /metrics (Prometheus exposition).
package httpserver
