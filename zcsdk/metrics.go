package zcsdk

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "zenlayercloud_sdk"

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "Zenlayer Cloud API calls by service, action and outcome.",
	}, []string{"service", "action", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{ //nolint:exhaustruct
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of Zenlayer Cloud API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "action"})

	var err error

	if requests, err = register(registerer, requests); err != nil {
		return nil, err
	}

	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}

	return &metrics{requests: requests, duration: duration}, nil
}

// register reuses the collector of an earlier client sharing the registerer.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	var zero C

	return zero, fmt.Errorf("zcsdk: failed to register metrics: %w", err)
}

func (m *metrics) observe(service, action string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = KindOf(err).String()
	}

	m.requests.WithLabelValues(service, action, outcome).Inc()
	m.duration.WithLabelValues(service, action).Observe(elapsed.Seconds())
}
