package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "denuncias_submissions_total",
			Help: "Report submissions by outcome.",
		},
		[]string{"outcome"},
	)

	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "denuncias_location_resolutions_total",
			Help: "Location resolutions by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	feedLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "denuncias_feed_loads_total",
			Help: "Incident list loads by outcome.",
		},
		[]string{"outcome"},
	)

	feedIncidents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "denuncias_feed_incidents",
			Help: "Incidents returned by the last successful list load.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		submissionsTotal,
		resolutionsTotal,
		feedLoadsTotal,
		feedIncidents,
	)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return e.Kind(err)
}
