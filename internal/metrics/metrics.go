package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Logins = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "team_hub_logins_total", Help: "Total successful logins"},
	)
	FailedLogins = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "team_hub_failed_logins_total", Help: "Total rejected login attempts"},
	)
	MessagesPosted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "team_hub_messages_total", Help: "Total chat messages appended"},
	)
	AssistantRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "team_hub_assistant_requests_total", Help: "Assistant gateway invocations by outcome"},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(Logins, FailedLogins, MessagesPosted, AssistantRequests)
}
