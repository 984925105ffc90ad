package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/kamishibai/internal/domain"
)

func runNATSServer(t *testing.T) string {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	srv := natsserver.RunServer(&opts)
	t.Cleanup(srv.Shutdown)
	return srv.ClientURL()
}

func TestNATSPublisher_CloseDeliversBufferedTransitions(t *testing.T) {
	url := runNATSServer(t)

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	inbox, err := sub.SubscribeSync(DefaultSubject)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	p, err := ConnectNATS(NATSConfig{URL: url, CloseTimeout: 2 * time.Second})
	require.NoError(t, err)

	ctx := context.Background()
	const sent = 50
	for i := range sent {
		require.NoError(t, p.Publish(ctx, Transition{
			AuditID:       int64(i + 1),
			CardID:        "card-1",
			PreviousState: domain.CardStateGreen,
			NewState:      domain.CardStateRed,
			Cause:         domain.CauseReset,
		}))
	}

	require.NoError(t, p.Close())
	assert.True(t, p.conn.IsClosed(), "Close returns only after the connection is closed")

	for i := range sent {
		msg, err := inbox.NextMsg(2 * time.Second)
		require.NoError(t, err, "message %d", i+1)

		var got Transition
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, int64(i+1), got.AuditID)
	}
}

func TestNATSPublisher_CloseTwice(t *testing.T) {
	p, err := ConnectNATS(NATSConfig{URL: runNATSServer(t), Subject: "kamishibai.test"})
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err = p.Publish(context.Background(), Transition{CardID: "card-1"})
	assert.ErrorIs(t, err, nats.ErrConnectionClosed)
}
