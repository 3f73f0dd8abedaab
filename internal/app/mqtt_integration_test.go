package app

import (
	"fmt"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/imu_dashboard/internal/config"
	"github.com/relabs-tech/imu_dashboard/internal/status"
)

const mochiTCPPort = 18883

// startBroker runs an in-process MQTT broker accepting every client.
func startBroker(t *testing.T) {
	t.Helper()

	server := mochi.New(nil)
	require.NoError(t, server.AddHook(new(auth.AllowHook), nil))

	tcp := listeners.NewTCP(listeners.Config{
		Type:    "tcp",
		Address: fmt.Sprintf("localhost:%d", mochiTCPPort),
	})
	require.NoError(t, server.AddListener(tcp))
	require.NoError(t, server.Serve())

	t.Cleanup(func() { _ = server.Close() })
}

func newPublisher(t *testing.T, brokerURL string) mqtt.Client {
	t.Helper()

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("imu-sim-test")
	pub := mqtt.NewClient(opts)

	token := pub.Connect()
	token.Wait()
	require.NoError(t, token.Error())
	t.Cleanup(func() { pub.Disconnect(250) })

	return pub
}

func TestDashboardOverMQTT(t *testing.T) {
	startBroker(t)

	cfg := &config.Config{
		MQTTURL:        fmt.Sprintf("tcp://localhost:%d", mochiTCPPort),
		MQTTTopic:      "imu/integration",
		MQTTClientID:   "dash-test",
		WebServerPort:  8080,
		MaxPoints:      300,
		EventQueueSize: 256,
	}

	d := NewDashboard(cfg.MQTTURL, cfg.MQTTTopic, cfg.MaxPoints, cfg.EventQueueSize)
	go d.Run()
	t.Cleanup(d.Close)

	client, err := ConnectMQTT(cfg, d)
	require.NoError(t, err)

	waitFor(t, func() bool { return d.Snapshot().Status == status.Connected }, "connected status")

	pub := newPublisher(t, cfg.MQTTURL)

	// the QoS 0 subscription may still be settling, so publish until a
	// sample lands
	deadline := time.Now().Add(5 * time.Second)
	for len(d.Snapshot().Accel) == 0 && time.Now().Before(deadline) {
		token := pub.Publish(cfg.MQTTTopic, 0, false, []byte(`{"ax_mg": 981, "gy_cds": 50}`))
		token.Wait()
		require.NoError(t, token.Error())
		time.Sleep(50 * time.Millisecond)
	}

	snap := d.Snapshot()
	require.NotEmpty(t, snap.Accel)
	require.NotEmpty(t, snap.Gyro)
	require.NotNil(t, snap.Accel[0].Ax)
	require.InDelta(t, 0.981, *snap.Accel[0].Ax, 1e-9)
	require.NotNil(t, snap.Gyro[0].Gy)
	require.InDelta(t, 0.5, *snap.Gyro[0].Gy, 1e-9)

	// malformed payloads are dropped, never fatal
	before := d.Snapshot().Dropped
	token := pub.Publish(cfg.MQTTTopic, 0, false, []byte(`{bad json`))
	token.Wait()
	require.NoError(t, token.Error())
	waitFor(t, func() bool { return d.Snapshot().Dropped > before }, "dropped counter")

	DisconnectMQTT(client, d)
	waitFor(t, func() bool { return d.Snapshot().Status == status.Closed }, "closed status")
}
