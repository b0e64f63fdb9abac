package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	InstallmentsRecordedTotal prometheus.Counter
	InstallmentsRejectedTotal prometheus.Counter
	LoansClosedTotal          prometheus.Counter
	TrashPurgedTotal          *prometheus.CounterVec
}

type BridgeMetrics struct {
	ConnectedDevices     prometheus.Gauge
	MessagesTotal        *prometheus.CounterVec
	DeepLinkOutcomes     *prometheus.CounterVec
	SessionsExpiredTotal prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "welfare_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		InstallmentsRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "welfare_ledger_installments_recorded_total",
				Help: "Total number of installments successfully recorded.",
			},
		),
		InstallmentsRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "welfare_ledger_installments_rejected_total",
				Help: "Total number of installments rejected for exceeding the outstanding balance.",
			},
		),
		LoansClosedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "welfare_ledger_loans_closed_total",
				Help: "Total number of loans closed by a final installment.",
			},
		),
		TrashPurgedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "welfare_ledger_trash_purged_total",
				Help: "Total number of trashed rows removed permanently.",
			},
			[]string{"kind"},
		),
	}

	Bridge = BridgeMetrics{
		ConnectedDevices: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "welfare_ledger_bridge_connected_devices",
				Help: "Number of native shells currently connected to the bridge.",
			},
		),
		MessagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "welfare_ledger_bridge_messages_total",
				Help: "Total number of bridge messages by direction and type.",
			},
			[]string{"direction", "type"},
		),
		DeepLinkOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "welfare_ledger_bridge_deep_links_total",
				Help: "Deep link deliveries by outcome.",
			},
			[]string{"outcome"},
		),
		SessionsExpiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "welfare_ledger_bridge_sessions_expired_total",
				Help: "Total number of bridge sessions cleared by the inactivity timer.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordInstallmentRecorded() {
	Business.InstallmentsRecordedTotal.Inc()
}

func RecordInstallmentRejected() {
	Business.InstallmentsRejectedTotal.Inc()
}

func RecordLoanClosed() {
	Business.LoansClosedTotal.Inc()
}

func RecordTrashPurged(kind string, count int64) {
	Business.TrashPurgedTotal.WithLabelValues(kind).Add(float64(count))
}

func RecordBridgeMessage(direction, messageType string) {
	Bridge.MessagesTotal.WithLabelValues(direction, messageType).Inc()
}

func RecordDeepLinkOutcome(outcome string) {
	Bridge.DeepLinkOutcomes.WithLabelValues(outcome).Inc()
}

func RecordSessionExpired() {
	Bridge.SessionsExpiredTotal.Inc()
}
