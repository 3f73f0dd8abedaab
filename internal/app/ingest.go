package app

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/relabs-tech/imu_dashboard/internal/config"
	"github.com/relabs-tech/imu_dashboard/internal/status"
)

// ConnectMQTT wires a paho client to the dashboard: lifecycle handlers
// feed the status machine and every message on the configured topic is
// enqueued for decoding. The subscription lives inside the connect
// handler so it is re-established after every reconnect. Reconnect and
// backoff policy stay with paho; the dashboard only observes the events.
func ConnectMQTT(cfg *config.Config, d *Dashboard) (mqtt.Client, error) {
	clientID := fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.NewString()[:8])

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			d.HandleLifecycle(status.EventConnect)

			// QoS 0: at-most-once is all the charts need
			token := c.Subscribe(cfg.MQTTTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
				d.HandleMessage(msg.Payload())
			})
			go func() {
				if token.Wait(); token.Error() != nil {
					log.Printf("mqtt: subscribe %s error: %v", cfg.MQTTTopic, token.Error())
					d.HandleLifecycle(status.EventError)
					return
				}
				log.Printf("mqtt: subscribed to %s", cfg.MQTTTopic)
			}()
		}).
		SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
			d.HandleLifecycle(status.EventReconnect)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
			d.HandleLifecycle(status.EventOffline)
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		d.HandleLifecycle(status.EventError)
		return nil, token.Error()
	}
	log.Printf("mqtt: connected to %s as %s", cfg.MQTTURL, clientID)

	return client, nil
}

// DisconnectMQTT tears the connection down. Best effort: errors while
// closing are swallowed, never returned.
func DisconnectMQTT(client mqtt.Client, d *Dashboard) {
	if client == nil {
		return
	}
	d.HandleLifecycle(status.EventClose)
	client.Disconnect(250)
	log.Println("mqtt: disconnected")
}
