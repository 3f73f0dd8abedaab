package status

import (
	"encoding/json"
	"fmt"
)

// Status tracks the MQTT connection lifecycle as shown on the dashboard
// badge. It starts at Connecting and is driven solely by transport
// lifecycle events.
type Status int

const (
	Connecting Status = iota
	Connected
	Reconnecting
	Offline
	Closed
	Error
)

var statusNames = [...]string{
	"connecting",
	"connected",
	"reconnecting",
	"offline",
	"closed",
	"error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalJSON serializes the status as its lowercase name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the lowercase name form.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", name)
}

// Event is a transport lifecycle notification.
type Event int

const (
	EventConnect Event = iota
	EventReconnect
	EventClose
	EventOffline
	EventError
)

var eventNames = [...]string{"connect", "reconnect", "close", "offline", "error"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Next returns the state after ev fires. The transition depends only on
// the event: Error in particular is reachable from any state, and only a
// connect event leaves it.
func (s Status) Next(ev Event) Status {
	switch ev {
	case EventConnect:
		return Connected
	case EventReconnect:
		return Reconnecting
	case EventClose:
		return Closed
	case EventOffline:
		return Offline
	case EventError:
		return Error
	}
	return s
}

// Color maps a status to the badge color. Unknown values get a neutral
// grey.
func (s Status) Color() string {
	switch s {
	case Connected:
		return "#2e7d32"
	case Connecting, Reconnecting:
		return "#f9a825"
	case Offline, Closed:
		return "#616161"
	case Error:
		return "#c62828"
	}
	return "#9e9e9e"
}
