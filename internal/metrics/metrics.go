package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ReportsClassified = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_reports_classified_total", Help: "Total waste reports successfully classified"},
	)
	ClassificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_classification_failures_total", Help: "Total failed classification calls"},
	)
	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ecosort_points_awarded_total", Help: "Total points awarded, by action kind"},
		[]string{"action"},
	)
	UpvotesRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_upvotes_rejected_total", Help: "Total upvote attempts rejected by business rules"},
	)
	Escalations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_escalations_total", Help: "Total complaints escalated to an authority"},
	)
	NotificationsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_authority_notifications_delivered_total", Help: "Total authority notifications delivered"},
	)
	NotificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_authority_notifications_failed_total", Help: "Total authority notification delivery failures"},
	)
	NotificationsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ecosort_authority_notifications_dlq_total", Help: "Total notifications inserted into the DLQ"},
	)
)

func Register() {
	prometheus.MustRegister(
		ReportsClassified,
		ClassificationFailures,
		PointsAwarded,
		UpvotesRejected,
		Escalations,
		NotificationsDelivered,
		NotificationsFailed,
		NotificationsDLQ,
	)
}
