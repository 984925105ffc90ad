package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/kamishibai/internal/clock"
)

func TestFixed_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	c := clock.NewFixed(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())

	later := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestSystem_ReportsInConfiguredLocation(t *testing.T) {
	loc, err := clock.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	c := clock.NewSystem(loc)
	assert.Equal(t, loc, c.Now().Location())
	assert.Equal(t, loc, c.Location())
}

func TestLoadLocation(t *testing.T) {
	loc, err := clock.LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = clock.LoadLocation("Local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = clock.LoadLocation("Not/AZone")
	assert.Error(t, err)
}
