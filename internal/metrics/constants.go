package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Calendar metric names
const (
	MetricNameClockTicks   = "clock_ticks_total"
	MetricNameGameDays     = "game_days_total"
	MetricNameGameSeasons  = "game_seasons_total"
	MetricNameSleepsTotal  = "sleeps_total"
)

// Garden metric names
const (
	MetricNamePlantsSpawned = "plants_spawned_total"
	MetricNamePlantsWatered = "plants_watered_total"
	MetricNamePlantsFed     = "plants_fertilized_total"
	MetricNameHarvests      = "harvests_total"
	MetricNameAutosaves     = "autosaves_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextClockTicks  = "Total number of clock ticks that advanced game time"
	HelpTextGameDays    = "Total number of in-game day boundaries crossed"
	HelpTextGameSeasons = "Total number of in-game season boundaries crossed"
	HelpTextSleeps      = "Total number of sleep-to-next-day jumps"

	HelpTextPlantsSpawned = "Total number of plants spawned"
	HelpTextPlantsWatered = "Total number of successful watering actions"
	HelpTextPlantsFed     = "Total number of successful fertilizing actions"
	HelpTextHarvests      = "Total number of successful harvests"
	HelpTextAutosaves     = "Total number of completed autosaves"
)

// Metric label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelSpecies = "species"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
