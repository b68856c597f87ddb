package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"submission-routing-engine/internal/services/scheduler"
)

func TestNextBusinessWindow(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{"saturday noon", at(11, 12, 0), at(13, 9, 0)},
		{"sunday early", at(12, 6, 0), at(13, 9, 0)},
		{"weekday before open", at(7, 7, 30), at(7, 9, 0)},
		{"weekday after close", at(9, 18, 0), at(10, 9, 0)},
		{"weekday at close", at(8, 17, 0), at(9, 9, 0)},
		{"friday evening", at(10, 17, 30), at(13, 9, 0)},
		{"weekday midnight", at(7, 0, 0), at(7, 9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduler.NextBusinessWindow(tt.in))
		})
	}
}

func TestNextBusinessWindow_InWindowUnchanged(t *testing.T) {
	for _, in := range []time.Time{
		at(6, 9, 0),
		at(7, 12, 34),
		time.Date(2025, time.January, 10, 16, 59, 59, 999, time.UTC),
	} {
		assert.Equal(t, in, scheduler.NextBusinessWindow(in))
	}
}

func TestNextBusinessWindow_Idempotent(t *testing.T) {
	start := at(5, 0, 0) // Sunday
	for i := 0; i < 7*24*4; i++ {
		in := start.Add(time.Duration(i) * 15 * time.Minute)
		once := scheduler.NextBusinessWindow(in)
		assert.Equal(t, once, scheduler.NextBusinessWindow(once), in.String())
		assert.True(t, scheduler.InBusinessWindow(once), in.String())
		assert.False(t, once.Before(in), in.String())
	}
}

func TestIsBusinessDay(t *testing.T) {
	assert.False(t, scheduler.IsBusinessDay(time.Sunday))
	assert.True(t, scheduler.IsBusinessDay(time.Monday))
	assert.True(t, scheduler.IsBusinessDay(time.Friday))
	assert.False(t, scheduler.IsBusinessDay(time.Saturday))
}
