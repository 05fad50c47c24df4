package history

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	appendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "division_history_appends_total",
		Help: "Total number of calculations recorded in history",
	}, []string{"kind"})

	clearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "division_history_clears_total",
		Help: "Total number of history clears",
	})

	sizeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "division_history_size",
		Help: "Current number of entries in history",
	})
)

func recordAppend(kind Kind, size int) {
	appendsTotal.WithLabelValues(string(kind)).Inc()
	sizeGauge.Set(float64(size))
}

func recordClear() {
	clearsTotal.Inc()
	sizeGauge.Set(0)
}
