package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsInterceptor records a request counter and latency histogram per
// procedure and code, plus a gauge of open server streams.
type MetricsInterceptor struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	streams  *prometheus.GaugeVec
}

var _ connect.Interceptor = (*MetricsInterceptor)(nil)

// NewMetricsInterceptor creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetricsInterceptor(reg prometheus.Registerer) *MetricsInterceptor {
	m := &MetricsInterceptor{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seatsync",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Completed RPCs by procedure and code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seatsync",
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		streams: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seatsync",
			Subsystem: "rpc",
			Name:      "open_streams",
			Help:      "Server streams currently open, by procedure.",
		}, []string{"procedure"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.streams)
	}
	return m
}

func (m *MetricsInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		start := time.Now()
		procedure := req.Spec().Procedure

		resp, err := next(ctx, req)

		m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(procedure, codeLabel(err)).Inc()
		return resp, err
	}
}

func (m *MetricsInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (m *MetricsInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		procedure := conn.Spec().Procedure
		open := m.streams.WithLabelValues(procedure)
		open.Inc()
		defer open.Dec()

		err := next(ctx, conn)
		m.requests.WithLabelValues(procedure, codeLabel(err)).Inc()
		return err
	}
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
