package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/roshambo/internal/protocol"
)

// A broadcast may race with a disconnect closing the same client.
// Enqueueing must never write to a closed send channel.
func TestClient_SendMessageConcurrentWithClose(t *testing.T) {
	t.Parallel()

	msg := protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{Count: 1})

	for i := 0; i < 200; i++ {
		c := &Client{
			ID:   "c1",
			Name: "Alice",
			send: make(chan []byte, 1),
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.SendMessage(msg)
			}
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()
	}
}

func TestClient_SendMessageAfterClose(t *testing.T) {
	t.Parallel()

	c := &Client{
		ID:   "c1",
		Name: "Alice",
		send: make(chan []byte, 1),
	}
	c.Close()

	// Must be a silent no-op, not a panic
	c.SendMessage(protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{Count: 1}))
}

// The tiny buffer forces the full-buffer branch, which closes the
// client after releasing the read lock
func TestClient_FullBufferClosesClient(t *testing.T) {
	t.Parallel()

	c := &Client{
		ID:   "c1",
		Name: "Alice",
		send: make(chan []byte, 1),
	}

	msg := protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{Count: 1})
	c.SendMessage(msg)
	c.SendMessage(msg)

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	assert.True(t, closed)
}
