package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersEverything(t *testing.T) {
	reg := NewRegistry()
	m := NewManager("fitness", "api", reg)

	m.CounterLogins.WithLabelValues("success").Inc()
	m.CounterCompletions.Inc()
	m.CounterRequests.WithLabelValues("GET", "/api/health", "200").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["fitness_api_logins"])
	assert.True(t, names["fitness_api_workout_completions"])
	assert.True(t, names["fitness_api_request"])
	assert.True(t, names["go_goroutines"])

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCompletions))
}

func TestNewManager_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewManager("fitness", "api", reg)
	assert.Panics(t, func() { NewManager("fitness", "api", reg) })
}
