package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextAtLaterToday(t *testing.T) {
	now := time.Date(2026, time.March, 3, 7, 30, 0, 0, time.UTC)

	next := nextAt(now, 9)
	assert.Equal(t, time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC), next)
}

func TestNextAtAlreadyPassedRollsToTomorrow(t *testing.T) {
	now := time.Date(2026, time.March, 3, 10, 15, 0, 0, time.UTC)

	next := nextAt(now, 9)
	assert.Equal(t, time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC), next)
}

func TestNextAtExactHourIsTomorrow(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

	next := nextAt(now, 9)
	assert.Equal(t, time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC), next,
		"a fire time equal to now must not schedule a zero-length sleep")
}

func TestNextAtCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 31, 20, 0, 0, 0, time.UTC)

	next := nextAt(now, 18)
	assert.Equal(t, time.Date(2026, time.February, 1, 18, 0, 0, 0, time.UTC), next)
}
