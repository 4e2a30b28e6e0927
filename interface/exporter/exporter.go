package exporter

import (
	"tokenomics/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "tokenomics"
	subsystem = "engine"
)

// Exporter publishes engine status as gauges and counts notifications. It is
// a NotificationSink so it can sit in the notifier fan-out.
type Exporter struct {
	totalSupply     prometheus.Gauge
	burnedTokens    prometheus.Gauge
	stakingTiers    prometheus.Gauge
	activeProposals prometheus.Gauge
	protectedPools  prometheus.Gauge
	active          prometheus.Gauge

	notifications *prometheus.CounterVec
	errorCount    prometheus.Counter
}

func NewExporter(registerer prometheus.Registerer) *Exporter {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	exporter := &Exporter{
		totalSupply:     gauge("total_supply", "Current total token supply"),
		burnedTokens:    gauge("burned_tokens", "Cumulative burned tokens"),
		stakingTiers:    gauge("staking_tiers", "Number of registered staking tiers"),
		activeProposals: gauge("active_proposals", "Number of governance proposals open for voting"),
		protectedPools:  gauge("protected_pools", "Number of liquidity pools under protection"),
		active:          gauge("active", "1 when the engine accepts operations"),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_total",
			Help:      "Counts the notifications emitted by the engine",
		}, []string{"kind"}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "error_count",
			Help:      "Counts the rejected operations and failed background tasks",
		}),
	}

	registerer.MustRegister(
		exporter.totalSupply,
		exporter.burnedTokens,
		exporter.stakingTiers,
		exporter.activeProposals,
		exporter.protectedPools,
		exporter.active,
		exporter.notifications,
		exporter.errorCount,
	)
	return exporter
}

func (exporter *Exporter) Notify(kind domain.NotificationKind, title, detail string) {
	exporter.notifications.WithLabelValues(string(kind)).Inc()
	if kind == domain.NotifyError || (kind == domain.NotifyWarning && title == domain.TitleTaskFailed) {
		exporter.errorCount.Inc()
	}
}

func (exporter *Exporter) Observe(status domain.Status) {
	exporter.totalSupply.Set(float64(status.TotalSupply))
	exporter.burnedTokens.Set(float64(status.BurnedTokens))
	exporter.stakingTiers.Set(float64(status.StakingTierCount))
	exporter.activeProposals.Set(float64(status.ActiveProposalCount))
	exporter.protectedPools.Set(float64(status.ProtectedPoolCount))
	if status.Active {
		exporter.active.Set(1)
	} else {
		exporter.active.Set(0)
	}
}
