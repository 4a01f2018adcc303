package metrics

import "github.com/prometheus/client_golang/prometheus"

// Diagnostics is the collector set for the timing and durability paths.
// All counters are best-effort observability: nothing in the logging or
// timing behavior depends on them, mirroring the contract that the log-file
// side channel must never affect the primary computation.
type Diagnostics struct {
	// Reports counts timer report calls, partitioned by mode
	// ("checkpoint" or "total").
	Reports *prometheus.CounterVec
	// FileAppends counts successful log-file line appends.
	FileAppends prometheus.Counter
	// Rotations counts completed rotation sequences.
	Rotations prometheus.Counter
	// DurabilityDegraded counts absorbed file-system failures on the
	// durability path, partitioned by stage ("mkdir", "rotate", "header",
	// "append").
	DurabilityDegraded *prometheus.CounterVec
}

// NewDiagnostics creates the diagnostics collectors and registers them with
// the given registerer. A nil registerer yields unregistered collectors,
// which is convenient in tests.
func NewDiagnostics(reg prometheus.Registerer) *Diagnostics {
	d := &Diagnostics{
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verbo",
			Name:      "timer_reports_total",
			Help:      "Number of elapsed-time report calls.",
		}, []string{"mode"}),
		FileAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "verbo",
			Name:      "logfile_appends_total",
			Help:      "Number of lines successfully appended to the log file.",
		}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "verbo",
			Name:      "logfile_rotations_total",
			Help:      "Number of completed log file rotation sequences.",
		}),
		DurabilityDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verbo",
			Name:      "logfile_durability_degraded_total",
			Help:      "Number of absorbed file-system failures on the log file path.",
		}, []string{"stage"}),
	}
	if reg != nil {
		reg.MustRegister(d.Reports, d.FileAppends, d.Rotations, d.DurabilityDegraded)
	}
	return d
}
