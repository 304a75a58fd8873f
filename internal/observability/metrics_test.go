package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnregisteredMetrics(t *testing.T) {
	m := NewUnregisteredMetrics()
	require.NotNil(t, m)

	// Usable without any registry, and without colliding with previously
	// registered collectors.
	assert.NotPanics(t, func() {
		m.ScoreRequests.WithLabelValues("success").Inc()
		m.ScoreDuration.Observe(0.05)
		m.ProviderRequests.WithLabelValues("error").Inc()
		m.ProviderDuration.Observe(0.1)
		m.ProviderEnabled.Set(1)
		m.AuditPublished.Inc()
		m.AuditErrors.Inc()
	})

	second := NewUnregisteredMetrics()
	require.NotNil(t, second)
	assert.NotSame(t, m.AuditPublished, second.AuditPublished)
}
