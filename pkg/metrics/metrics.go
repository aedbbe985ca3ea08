package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain counters of the site.
type Metrics struct {
	ContactSubmissions     *prometheus.CounterVec
	NewsletterSignups      prometheus.Counter
	NotificationDeliveries *prometheus.CounterVec
	AdminLogins            *prometheus.CounterVec
	AdminChanges           *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg. A nil reg registers with the
// default Prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ContactSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		NewsletterSignups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "newsletter_signups_total",
			Help:      "Newsletter signups acknowledged",
		}),
		NotificationDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Staff notifications by channel and status",
		}, []string{"channel", "status"}),
		AdminLogins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin console login attempts by result",
		}, []string{"result"}),
		AdminChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_changes_total",
			Help:      "Admin console writes by model and action",
		}, []string{"model", "action"}),
	}
}

// NewNop returns metrics registered with a throwaway registry.
func NewNop() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
