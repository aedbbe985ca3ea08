package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsRegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("clinic", reg)

	m.ContactSubmissions.WithLabelValues("created").Inc()
	m.ContactSubmissions.WithLabelValues("created").Inc()
	m.NewsletterSignups.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NewsletterSignups))

	count, err := testutil.GatherAndCount(reg, "clinic_contact_submissions_total", "clinic_newsletter_signups_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
