package report

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errTypeLabel  = "error_type"
	endpointLabel = "endpoint"
)

var (
	reportSend = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_send",
		Help: "The number of pass reports sent to the collector.",
	}, []string{
		endpointLabel,
	})

	reportSendError = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_send_errors",
		Help: "The errors that occured while sending a pass report.",
	}, []string{
		endpointLabel,
		errTypeLabel,
	})

	reportSendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "report_send_latency",
		Help: "The time to send a pass report.",
	}, []string{
		endpointLabel,
	})
)

func instrumentReportLatency(endpoint string, start time.Time) {
	reportSendLatency.With(prometheus.Labels{
		endpointLabel: endpoint,
	}).Observe(time.Since(start).Seconds())
}

func instrumentReportSend(endpoint string) {
	reportSend.With(prometheus.Labels{
		endpointLabel: endpoint,
	}).Inc()
}

func instrumentReportSendError(endpoint string, err error) {
	reportSendError.
		With(prometheus.Labels{
			endpointLabel: endpoint,
			errTypeLabel:  errors.Type(err),
		}).
		Inc()
}
