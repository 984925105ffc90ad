package eventstest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/kamishibai/internal/events"
	"github.com/mtlprog/kamishibai/internal/events/eventstest"
)

func TestRecorder_Drain(t *testing.T) {
	r := eventstest.NewRecorder(1)
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, events.Transition{CardID: "a"}))
	require.NoError(t, r.Publish(ctx, events.Transition{CardID: "b"})) // dropped

	got := r.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].CardID)
	assert.Empty(t, r.Drain())
}
