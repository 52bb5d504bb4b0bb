package api

import (
	"foodindex/internal/models"
	"foodindex/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Renders   *prometheus.CounterVec
	Fallbacks *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewMetrics(registry *prometheus.Registry, sessions *session.Store) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodindex_dashboard_renders_total",
			Help: "Dashboard recomputations by surface and outcome.",
		}, []string{"surface", "outcome"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodindex_selection_fallbacks_total",
			Help: "Selections replaced by the default because the column does not exist.",
		}, []string{"control"}),
		registry: registry,
	}
	registry.MustRegister(
		m.Renders,
		m.Fallbacks,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "foodindex_sessions",
			Help: "Sessions currently held in memory.",
		}, func() float64 { return float64(sessions.Len()) }),
	)
	return m
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) observeRender(surface string, view *models.DashboardData) {
	outcome := "ok"
	if view.Upper.Error != "" || view.Lower.Error != "" || (view.Raw != nil && view.Raw.Error != "") {
		outcome = "degraded"
	}
	m.Renders.WithLabelValues(surface, outcome).Inc()
}
