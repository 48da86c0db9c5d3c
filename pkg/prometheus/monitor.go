package prometheus

import "github.com/prometheus/client_golang/prometheus"

// Monitor represents a Prometheus monitor
// It contains Prometheus registry and all available metrics
type Monitor struct {
	Registry *prometheus.Registry

	Scrapes        *prometheus.CounterVec
	ScrapeDuration *prometheus.GaugeVec
	Cities         *prometheus.GaugeVec
	RowsSkipped    *prometheus.CounterVec
	LastScrape     *prometheus.GaugeVec
	Lookups        *prometheus.CounterVec
	BotCommands    *prometheus.CounterVec
}

// New creates a new Monitor
func New() *Monitor {
	reg := prometheus.NewRegistry()
	monitor := &Monitor{
		Registry: reg,

		Scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gwgp_scrapes_total",
			Help: "Number of scrapes of the prediction page by result",
		}, []string{"result"}),

		ScrapeDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gwgp_scrape_duration_seconds",
			Help: "Duration of the last scrape in seconds",
		}, []string{}),

		Cities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gwgp_cities",
			Help: "Number of cities in the current snapshot",
		}, []string{}),

		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gwgp_rows_skipped_total",
			Help: "Table rows left out of the snapshot by reason",
		}, []string{"reason"}),

		LastScrape: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gwgp_last_scrape",
			Help: "Time of the last successful scrape",
		}, []string{}),

		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gwgp_lookups_total",
			Help: "City lookups by result",
		}, []string{"found"}),

		BotCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gwgp_bot_commands_total",
			Help: "Handled bot commands",
		}, []string{"command"}),
	}

	reg.MustRegister(
		monitor.Scrapes,
		monitor.ScrapeDuration,
		monitor.Cities,
		monitor.RowsSkipped,
		monitor.LastScrape,
		monitor.Lookups,
		monitor.BotCommands,
	)

	return monitor
}
