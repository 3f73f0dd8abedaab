package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	c := &wsClient{send: make(chan []byte, 4)}
	h.register(c)
	assert.Equal(t, 1, h.ClientCount())

	h.Broadcast([]byte(`{"status":"connected"}`))

	select {
	case data := <-c.send:
		assert.Equal(t, `{"status":"connected"}`, string(data))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	c := &wsClient{send: make(chan []byte, 1)}
	h.register(c)

	h.Broadcast([]byte(`a`))
	h.Broadcast([]byte(`b`)) // buffer full: client gets dropped

	assert.Equal(t, 0, h.ClientCount())

	data, ok := <-c.send
	require.True(t, ok)
	assert.Equal(t, "a", string(data))

	_, ok = <-c.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHubUnregisterIdempotent(t *testing.T) {
	h := NewHub()
	c := &wsClient{send: make(chan []byte, 1)}
	h.register(c)

	h.unregister(c)
	h.unregister(c) // second call must not close the channel again

	assert.Equal(t, 0, h.ClientCount())
}
