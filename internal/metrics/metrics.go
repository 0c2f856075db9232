// Package metrics collects and exposes Prometheus metrics for the auction API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface used by the service and server layers
type Recorder interface {
	RecordBidAccepted(amount float64)
	RecordBidRejected(reason string)
	RecordRegistration(success bool)
	RecordLogin(success bool)
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Collector is the Prometheus implementation of Recorder
type Collector struct {
	bidsAccepted   prometheus.Counter
	bidAmount      prometheus.Histogram
	bidsRejected   *prometheus.CounterVec
	registrations  *prometheus.CounterVec
	logins         *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bidsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carauction_bids_accepted_total",
			Help: "Total number of accepted bids",
		}),
		bidAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "carauction_bid_amount",
			Help:    "Amounts of accepted bids",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		}),
		bidsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carauction_bids_rejected_total",
			Help: "Rejected bids by reason",
		}, []string{"reason"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carauction_registrations_total",
			Help: "User registrations by outcome",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carauction_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carauction_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		c.bidsAccepted,
		c.bidAmount,
		c.bidsRejected,
		c.registrations,
		c.logins,
		c.requestLatency,
	)

	return c
}

// RecordBidAccepted counts an accepted bid and observes its amount
func (c *Collector) RecordBidAccepted(amount float64) {
	c.bidsAccepted.Inc()
	c.bidAmount.Observe(amount)
}

// RecordBidRejected counts a rejected bid under reason
func (c *Collector) RecordBidRejected(reason string) {
	c.bidsRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordRegistration(success bool) {
	c.registrations.WithLabelValues(outcome(success)).Inc()
}

func (c *Collector) RecordLogin(success bool) {
	c.logins.WithLabelValues(outcome(success)).Inc()
}

// RecordHTTPRequest observes one handled request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.requestLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement
type Nop struct{}

func (Nop) RecordBidAccepted(float64) {}
func (Nop) RecordBidRejected(string) {}
func (Nop) RecordRegistration(bool) {}
func (Nop) RecordLogin(bool) {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
