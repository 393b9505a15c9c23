package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/config"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics/datadog"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics/prompush"
)

// setupMetrics installs the configured backend and returns the function that
// flushes it at the end of the command.
func setupMetrics(job string, m config.Metrics, log logrus.FieldLogger) (func(), error) {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "", "none":
		log.WithField("backend", "none").Debug("metrics disabled")
		return func() {}, nil
	case "prometheus":
		b, err = prompush.NewBackend(job, m.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			Namespace:  m.Namespace,
			GlobalTags: m.Tags,
		})
	default:
		return nil, fmt.Errorf("unknown metrics backend %q", m.Backend)
	}
	if err != nil {
		return nil, err
	}

	metrics.SetBackend(b)
	log.WithFields(logrus.Fields{"backend": m.Backend, "job": job}).Info("metrics enabled")
	return func() { flushMetrics(log) }, nil
}
