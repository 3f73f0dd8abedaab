package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/imu_dashboard/internal/config"
)

// RunDashboard starts the state-update loop, the web server and the MQTT
// subscription, then blocks until SIGINT/SIGTERM.
func RunDashboard(cfg *config.Config) error {
	d := NewDashboard(cfg.MQTTURL, cfg.MQTTTopic, cfg.MaxPoints, cfg.EventQueueSize)
	hub := NewHub()

	d.SetNotify(func(s Snapshot) {
		data, err := json.Marshal(s)
		if err != nil {
			log.Printf("dashboard: snapshot marshal error: %v", err)
			return
		}
		hub.Broadcast(data)
	})

	go d.Run()

	srv := NewWebServer(cfg.WebServerPort, d, hub)
	go func() {
		log.Printf("web server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("web server error: %v", err)
		}
	}()

	client, err := ConnectMQTT(cfg, d)
	if err != nil {
		return err
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("dashboard: shutting down")
	DisconnectMQTT(client, d)
	d.Close()
	_ = srv.Close()
	return nil
}
