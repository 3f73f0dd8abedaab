package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard page may be opened from another host on the LAN
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebServer builds the HTTP surface: the JSON snapshot API, the
// websocket push channel and the static dashboard page.
func NewWebServer(port int, d *Dashboard, hub *Hub) *http.Server {
	mux := http.NewServeMux()

	// 1) JSON API endpoint: full telemetry snapshot
	mux.HandleFunc("/api/telemetry", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(d.Snapshot()); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 2) Websocket: a snapshot is pushed after every applied message
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		client := &wsClient{send: make(chan []byte, 64)}
		hub.register(client)
		log.Printf("web: websocket client connected, total clients: %d", hub.ClientCount())

		// reader: we expect no client messages, but reads must be drained
		// so close frames are processed
		go func() {
			defer hub.unregister(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// writer
		go func() {
			defer conn.Close()

			// send the current state right away so the page does not
			// wait for the next sample
			if snap, err := json.Marshal(d.Snapshot()); err == nil {
				_ = conn.WriteMessage(websocket.TextMessage, snap)
			}

			for data := range client.send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}()
	})

	// 3) Static files from ./web as the root
	mux.Handle("/", http.FileServer(http.Dir("web")))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}
