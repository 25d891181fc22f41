package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lapsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptimer_laps_recorded_total",
		Help: "Total number of laps recorded",
	})

	lapsSplit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptimer_laps_split_total",
		Help: "Total number of laps split in two",
	})

	skipToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laptimer_skip_toggles_total",
		Help: "Total number of skip toggles by resulting state",
	}, []string{"state"}) // state=skipped|restored

	resets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptimer_resets_total",
		Help: "Total number of session resets",
	})

	sessionRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laptimer_session_running",
		Help: "Whether the stopwatch is running (1) or idle (0)",
	})

	activeLaps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laptimer_active_laps",
		Help: "Number of laps currently counted in the average",
	})
)

func RecordLap() {
	lapsRecorded.Inc()
}

func RecordSplit() {
	lapsSplit.Inc()
}

// RecordSkipToggle counts a skip toggle. skipped is the lap's new state.
func RecordSkipToggle(skipped bool) {
	state := "restored"
	if skipped {
		state = "skipped"
	}
	skipToggles.WithLabelValues(state).Inc()
}

func RecordReset() {
	resets.Inc()
}

// ObserveSession publishes the current running state and active lap count
func ObserveSession(running bool, active int) {
	if running {
		sessionRunning.Set(1)
	} else {
		sessionRunning.Set(0)
	}
	activeLaps.Set(float64(active))
}
