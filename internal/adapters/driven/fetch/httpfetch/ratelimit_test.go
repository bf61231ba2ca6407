package httpfetch

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Unlimited(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})
	for i := 0; i < 100; i++ {
		assert.NoError(t, r.Wait(context.Background()))
	}
}

func TestRateLimiter_Throttles(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	assert.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, r.Wait(ctx))
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"seconds", "30", 30 * time.Second},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"past date", now.Add(-time.Hour).Format(http.TimeFormat), DefaultRetryAfter},
		{"empty", "", DefaultRetryAfter},
		{"zero", "0", DefaultRetryAfter},
		{"garbage", "soon", DefaultRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfter(tt.value, now))
		})
	}
}
