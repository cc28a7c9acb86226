package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundinghub_submission_transitions_total",
			Help: "Total number of committed submission status transitions",
		},
		[]string{"from", "to", "actor"},
	)

	casConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundinghub_cas_conflicts_total",
			Help: "Total number of lost compare-and-swap races on submission status",
		},
	)

	sweepRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundinghub_sweep_runs_total",
			Help: "Total number of sweep passes",
		},
	)

	sweepOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundinghub_sweep_outcomes_total",
			Help: "Per-submission outcomes of sweep passes",
		},
		[]string{"outcome"}, // auto_approved, frozen, skipped
	)

	paymentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundinghub_payments_total",
			Help: "Total number of payment records issued",
		},
	)

	paymentAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundinghub_payment_amount_minor_units_total",
			Help: "Sum of issued payment amounts in currency minor units",
		},
		[]string{"currency"},
	)
)

// RecordTransition counts a committed status transition. The actor label is
// "system" for sweep-initiated transitions and "admin" otherwise, keeping
// cardinality bounded.
func RecordTransition(from, to, actor string) {
	transitionsTotal.WithLabelValues(from, to, actor).Inc()
}

// RecordCASConflict counts a lost compare-and-swap race.
func RecordCASConflict() {
	casConflictsTotal.Inc()
}

// RecordSweep counts one sweep pass and its per-submission outcomes.
func RecordSweep(autoApproved, frozen, skipped int) {
	sweepRunsTotal.Inc()
	sweepOutcomesTotal.WithLabelValues("auto_approved").Add(float64(autoApproved))
	sweepOutcomesTotal.WithLabelValues("frozen").Add(float64(frozen))
	sweepOutcomesTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordPayment counts an issued payment.
func RecordPayment(amount int64, currency string) {
	paymentsTotal.Inc()
	paymentAmountTotal.WithLabelValues(currency).Add(float64(amount))
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
