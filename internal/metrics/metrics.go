// Package metrics defines the bot's Prometheus collectors. They are
// registered on the default registry and exposed by the ops listener
// in internal/app.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// StoreReads counts completed remote collection reads, by collection.
	StoreReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postbot_store_reads_total",
		Help: "Completed content-store collection reads.",
	}, []string{"collection"})

	// CacheLookups counts resolver cache lookups, by cache namespace
	// and outcome (hit or miss).
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postbot_cache_lookups_total",
		Help: "Resolver cache lookups by namespace and outcome.",
	}, []string{"cache", "outcome"})

	// Resolutions counts entitlement resolutions, by outcome
	// (ok, user_not_found, error).
	Resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postbot_resolutions_total",
		Help: "Entitlement resolutions by outcome.",
	}, []string{"outcome"})

	// Deliveries counts channel-post deliveries, by outcome
	// (direct, broadcast_form, failed).
	Deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postbot_deliveries_total",
		Help: "Channel-post deliveries by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(StoreReads, CacheLookups, Resolutions, Deliveries)
}
