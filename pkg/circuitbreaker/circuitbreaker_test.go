package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAndRecovers(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(Settings{Name: "smtp", MaxFailures: 2, Timeout: time.Minute})
	cb.now = func() time.Time { return now }

	boom := errors.New("dial tcp: connection refused")
	calls := 0
	failing := func() error { calls++; return boom }

	assert.ErrorIs(t, cb.Execute(failing), boom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(failing), boom)
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(failing), ErrOpen)
	assert.Equal(t, 2, calls)

	now = now.Add(time.Minute)
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(failing), boom)
	assert.Equal(t, StateOpen, cb.State())

	now = now.Add(time.Minute)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, "closed", cb.State().String())
}
