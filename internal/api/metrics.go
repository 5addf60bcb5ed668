package api

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

type apiMetrics struct {
	startedAtUnix       int64
	excusesServedTotal  atomic.Int64
	imagesServedTotal   atomic.Int64
	invalidInputTotal   atomic.Int64
	rateLimitedTotal    atomic.Int64
	upstreamErrorsTotal atomic.Int64
	timeoutsTotal       atomic.Int64
	blockedTotal        atomic.Int64
}

func newAPIMetrics() *apiMetrics {
	return &apiMetrics{startedAtUnix: time.Now().Unix()}
}

func (m *apiMetrics) recordFailure(f failure) {
	switch f.tag {
	case "invalid_input":
		m.invalidInputTotal.Add(1)
	case "rate_limited", "upstream_rate_limited":
		m.rateLimitedTotal.Add(1)
	case "timeout":
		m.timeoutsTotal.Add(1)
	case "content_blocked", "content_blocked_safety":
		m.blockedTotal.Add(1)
	default:
		m.upstreamErrorsTotal.Add(1)
	}
}

func (m *apiMetrics) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.WriteHeader(http.StatusOK)

	uptimeSeconds := time.Now().Unix() - m.startedAtUnix
	_, _ = fmt.Fprintf(w, "# HELP alibi_uptime_seconds Process uptime in seconds.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_uptime_seconds gauge\n")
	_, _ = fmt.Fprintf(w, "alibi_uptime_seconds %d\n", uptimeSeconds)

	_, _ = fmt.Fprintf(w, "# HELP alibi_excuses_served_total Successful excuse-pair responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_excuses_served_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_excuses_served_total %d\n", m.excusesServedTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_images_served_total Successful image responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_images_served_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_images_served_total %d\n", m.imagesServedTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_invalid_input_total Requests rejected by validation.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_invalid_input_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_invalid_input_total %d\n", m.invalidInputTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_rate_limited_total Requests turned away by a rate limit.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_rate_limited_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_rate_limited_total %d\n", m.rateLimitedTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_upstream_errors_total Upstream generation failures.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_upstream_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_upstream_errors_total %d\n", m.upstreamErrorsTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_timeouts_total Upstream calls aborted on timeout.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_timeouts_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_timeouts_total %d\n", m.timeoutsTotal.Load())

	_, _ = fmt.Fprintf(w, "# HELP alibi_content_blocked_total Generations stopped by safety or content filters.\n")
	_, _ = fmt.Fprintf(w, "# TYPE alibi_content_blocked_total counter\n")
	_, _ = fmt.Fprintf(w, "alibi_content_blocked_total %d\n", m.blockedTotal.Load())
}
