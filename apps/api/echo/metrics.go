package echoapi

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

// Metrics counts portal activity. It is exposed by the debug server.
type Metrics struct {
	logins        *prometheus.CounterVec
	registrations prometheus.Counter
	acks          *prometheus.CounterVec
}

// NewMetrics registers the portal collectors on reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pharmapp",
			Name:      "logins_total",
			Help:      "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmapp",
			Name:      "registrations_total",
			Help:      "Students registered.",
		}),
		acks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pharmapp",
			Name:      "acks_total",
			Help:      "Acknowledgements produced, by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.logins, m.registrations, m.acks)
	}
	return m
}

func (m *Metrics) login(role string, err error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != user.RoleAdmin && role != user.RoleStudent {
		role = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.logins.WithLabelValues(role, outcome).Inc()
}

// Notifier counts every ack delivered through next.
func (m *Metrics) Notifier(next core.Notifier) core.Notifier {
	return countingNotifier{next: next, acks: m.acks}
}

type countingNotifier struct {
	next core.Notifier
	acks *prometheus.CounterVec
}

func (n countingNotifier) Notify(audience string, acks ...core.Ack) {
	for _, ack := range acks {
		n.acks.WithLabelValues(ack.Kind).Inc()
	}
	n.next.Notify(audience, acks...)
}
