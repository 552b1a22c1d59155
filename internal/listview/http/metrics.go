package listviewhttp

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts list renders and the rows flowing through the pipeline.
type Metrics struct {
	renders *prometheus.CounterVec
	rowsIn  *prometheus.CounterVec
	rowsOut *prometheus.CounterVec
	toggles *prometheus.CounterVec
}

// NewMetrics registers the list-view collectors against registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cargodesk",
		Name:      "listview_renders_total",
		Help:      "List screen renders by screen.",
	}, []string{"screen"})
	rowsIn := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cargodesk",
		Name:      "listview_rows_in_total",
		Help:      "Records fetched before filtering.",
	}, []string{"screen"})
	rowsOut := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cargodesk",
		Name:      "listview_rows_out_total",
		Help:      "Records left after the applied filters.",
	}, []string{"screen"})
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cargodesk",
		Name:      "listview_sort_toggles_total",
		Help:      "Header sort toggles by screen and resulting direction.",
	}, []string{"screen", "direction"})
	registerer.MustRegister(renders, rowsIn, rowsOut, toggles)
	return &Metrics{renders: renders, rowsIn: rowsIn, rowsOut: rowsOut, toggles: toggles}
}

func (m *Metrics) observeRender(screen string, in, out int) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(screen).Inc()
	m.rowsIn.WithLabelValues(screen).Add(float64(in))
	m.rowsOut.WithLabelValues(screen).Add(float64(out))
}

func (m *Metrics) observeToggle(screen string, dir string) {
	if m == nil {
		return
	}
	if dir == "" {
		dir = "none"
	}
	m.toggles.WithLabelValues(screen, dir).Inc()
}
