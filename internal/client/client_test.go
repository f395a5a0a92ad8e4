package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/roshambo/internal/protocol"
)

var upgrader = websocket.Upgrader{}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		// simple echo
		_ = c.WriteMessage(mt, message)
	}
}

func TestClient_ConnectAndSend(t *testing.T) {
	// Start a mock WS server that echoes messages
	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http")

	client := NewClient(wsURL)
	require.NotNil(t, client)

	err := client.Connect()
	require.NoError(t, err)
	defer client.Close()

	time.Sleep(100 * time.Millisecond)
	assert.True(t, client.IsConnected())

	// Echo server bounces our ping straight back
	err = client.Ping()
	assert.NoError(t, err)

	receivedMsg, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPing, receivedMsg.Type)
}

func TestClient_ActionsEncodeExpectedTypes(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient("ws" + strings.TrimPrefix(s.URL, "http"))
	require.NoError(t, client.Connect())
	defer client.Close()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, client.JoinSeat(1))
	msg, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgJoinSeat, msg.Type)
	payload, err := protocol.ParsePayload[protocol.JoinSeatPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 1, payload.Seat)

	require.NoError(t, client.MakeChoice("rock"))
	msg, err = client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgMakeChoice, msg.Type)

	require.NoError(t, client.LeaveSeat())
	msg, err = client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgLeaveSeat, msg.Type)
}

func TestClient_AdoptsServerIdentity(t *testing.T) {
	// A server that greets every connection with its identity
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()

		greeting := protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
			PlayerID:   "id-42",
			PlayerName: "SwiftFox42",
		})
		data, _ := greeting.Encode()
		_ = c.WriteMessage(websocket.TextMessage, data)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
	defer s.Close()

	client := NewClient("ws" + strings.TrimPrefix(s.URL, "http"))
	require.NoError(t, client.Connect())
	defer client.Close()

	_, err := client.ReceiveWithTimeout(1 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "id-42", client.PlayerID)
	assert.Equal(t, "SwiftFox42", client.PlayerName)
}

func TestClient_SendOnClosedConnection(t *testing.T) {
	client := NewClient("ws://localhost:1")
	client.Close()

	err := client.Ping()
	assert.Error(t, err)
}
