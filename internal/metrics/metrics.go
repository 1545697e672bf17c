package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devchat_api_requests_total",
			Help: "Outbound DevChat API calls by method and response status.",
		},
		[]string{"method", "status"},
	)

	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devchat_session_events_total",
			Help: "Session changes by kind (login, logout, expired).",
		},
		[]string{"kind"},
	)

	VoteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "devchat_vote_failures_total",
			Help: "Vote requests that failed after the local state was updated.",
		},
	)
)

func init() {
	prometheus.MustRegister(APIRequests)
	prometheus.MustRegister(SessionEvents)
	prometheus.MustRegister(VoteFailures)
}

// ObserveAPI records one outbound call. status 0 means no response arrived.
func ObserveAPI(method string, status int) {
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequests.WithLabelValues(method, label).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
