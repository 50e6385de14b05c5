package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

const namespace = "zabbixbot"

// Recorder implements outbound.Metrics with Prometheus counters on a private registry.
// Registers:
//   - zabbixbot_commands_total{command}
//   - zabbixbot_interactions_total{action,outcome}
//   - zabbixbot_guard_rejections_total{reason}
type Recorder struct {
	registry        *prometheus.Registry
	commands        *prometheus.CounterVec
	interactions    *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
}

// NewRecorder creates a Recorder together with Go runtime and process collectors.
func NewRecorder() (*Recorder, error) {
	registry := prometheus.NewRegistry()

	commands := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Chat commands run, including usage replies.",
		},
		[]string{"command"},
	)
	interactions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Activation form interactions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
	guardRejections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_rejections_total",
			Help:      "Requests rejected by the channel allow-list.",
		},
		[]string{"reason"},
	)

	cs := []prometheus.Collector{
		commands,
		interactions,
		guardRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}

	return &Recorder{
		registry:        registry,
		commands:        commands,
		interactions:    interactions,
		guardRejections: guardRejections,
	}, nil
}

var _ outbound.Metrics = (*Recorder)(nil)

func (r *Recorder) CommandHandled(command string) {
	r.commands.WithLabelValues(command).Inc()
}

func (r *Recorder) InteractionHandled(action, outcome string) {
	r.interactions.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) GuardRejected(reason string) {
	r.guardRejections.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
