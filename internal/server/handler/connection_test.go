package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/protocol"
	"github.com/palemoky/roshambo/internal/testutil"
)

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}

	sent := time.Now().UnixMilli()
	h.Handle(c, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: sent}))

	msg := c.LastOfType(protocol.MsgPong)
	require.NotNil(t, msg)

	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, sent, payload.ClientTimestamp)
	assert.GreaterOrEqual(t, payload.ServerTimestamp, sent)
}

func TestHandler_GetOnlineCount(t *testing.T) {
	t.Parallel()

	mockServer := &testutil.MockServer{}
	mockServer.On("GetOnlineCount").Return(7)

	session := game.NewSession(50 * time.Millisecond)
	h := NewHandler(HandlerDeps{Server: mockServer, Session: session})

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, protocol.MustNewMessage(protocol.MsgGetOnlineCount, nil))

	msg := c.LastOfType(protocol.MsgOnlineCount)
	require.NotNil(t, msg)

	payload, err := protocol.ParsePayload[protocol.OnlineCountPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 7, payload.Count)
	mockServer.AssertExpectations(t)
}
