package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistryProvider defines the interface for accessing the verbo metrics
// registry. This allows consumers of the library to expose its diagnostics
// counters via their chosen method (e.g., a Prometheus HTTP endpoint).
type RegistryProvider interface {
	// Registry returns the Prometheus registry containing verbo metrics.
	Registry() *prometheus.Registry
}
