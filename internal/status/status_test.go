package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleSequence(t *testing.T) {
	s := Connecting
	observed := []Status{s}
	for _, ev := range []Event{EventConnect, EventReconnect, EventClose} {
		s = s.Next(ev)
		observed = append(observed, s)
	}
	assert.Equal(t, []Status{Connecting, Connected, Reconnecting, Closed}, observed)
}

func TestReconnectRecoversToConnected(t *testing.T) {
	s := Reconnecting
	assert.Equal(t, Connected, s.Next(EventConnect))
}

func TestErrorReachableFromAnyState(t *testing.T) {
	for _, s := range []Status{Connecting, Connected, Reconnecting, Offline, Closed, Error} {
		assert.Equal(t, Error, s.Next(EventError), "from %s", s)
	}
}

func TestConnectLeavesError(t *testing.T) {
	assert.Equal(t, Connected, Error.Next(EventConnect))
}

func TestUnknownEventKeepsState(t *testing.T) {
	assert.Equal(t, Connected, Connected.Next(Event(42)))
}

func TestColors(t *testing.T) {
	for _, s := range []Status{Connecting, Connected, Reconnecting, Offline, Closed, Error} {
		assert.NotEmpty(t, s.Color(), "missing color for %s", s)
	}
	// unrecognized values get the neutral badge
	assert.Equal(t, "#9e9e9e", Status(42).Color())
}

func TestStringNames(t *testing.T) {
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "reconnecting", Reconnecting.String())
	assert.Equal(t, "unknown", Status(42).String())
	assert.Equal(t, "reconnect", EventReconnect.String())
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Connected)
	require.NoError(t, err)
	assert.Equal(t, `"connected"`, string(data))

	var s Status
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, Connected, s)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &s))
}
