package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Calendar Metrics
var (
	ClockTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameClockTicks,
			Help: HelpTextClockTicks,
		},
	)

	GameDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGameDays,
			Help: HelpTextGameDays,
		},
	)

	GameSeasons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGameSeasons,
			Help: HelpTextGameSeasons,
		},
	)

	Sleeps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSleepsTotal,
			Help: HelpTextSleeps,
		},
	)
)

// Garden Metrics
var (
	PlantsSpawned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsSpawned,
			Help: HelpTextPlantsSpawned,
		},
		[]string{LabelSpecies},
	)

	PlantsWatered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsWatered,
			Help: HelpTextPlantsWatered,
		},
	)

	PlantsFertilized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsFed,
			Help: HelpTextPlantsFed,
		},
	)

	Harvests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvests,
			Help: HelpTextHarvests,
		},
		[]string{LabelSpecies},
	)

	Autosaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAutosaves,
			Help: HelpTextAutosaves,
		},
	)
)
