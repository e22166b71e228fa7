package metric

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SizeSource reports current table sizes at scrape time.
type SizeSource interface {
	SessionCount(ctx context.Context) (int, error)
	AccountCount() int
}

// Collector reads table sizes on every scrape instead of tracking them
// incrementally.
type Collector struct {
	src      SizeSource
	sessions *prometheus.Desc
	accounts *prometheus.Desc
}

// NewCollector creates a collector over src.
func NewCollector(src SizeSource) *Collector {
	return &Collector{
		src: src,
		sessions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sessions", "active"),
			"Sessions currently held, including expired ones not yet swept.",
			nil, nil),
		accounts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "accounts", "total"),
			"Registered accounts.",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessions
	ch <- c.accounts
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if n, err := c.src.SessionCount(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.sessions, prometheus.GaugeValue, float64(n))
	}
	ch <- prometheus.MustNewConstMetric(c.accounts, prometheus.GaugeValue, float64(c.src.AccountCount()))
}
