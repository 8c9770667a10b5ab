package parcel

import "github.com/prometheus/client_golang/prometheus"

// StatusCollector exports the number of stored parcels per status. It reads the
// store directly so scrapes never pay the simulated latency.
type StatusCollector struct {
	store *Store
	desc  *prometheus.Desc
}

func NewStatusCollector(store *Store) *StatusCollector {
	return &StatusCollector{
		store: store,
		desc: prometheus.NewDesc(
			"parcel_store_parcels",
			"Number of parcels in the store by current status.",
			[]string{"status"}, nil,
		),
	}
}

func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	counts := c.store.countByStatus()
	for _, st := range Statuses {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(counts[st]), string(st))
	}
}
