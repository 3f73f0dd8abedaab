// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// imu_sim publishes synthetic IMU samples for dashboard bring-up and
// demos. It alternates between the pre-scaled and the raw integer-scaled
// wire variants, with occasional accel-only and gyro-only messages so the
// charts show gaps.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/relabs-tech/imu_dashboard/internal/config"
)

var (
	configPath = flag.String("config", "dashboard_config.txt", "path to config file")
	interval   = flag.Duration("interval", 100*time.Millisecond, "publish interval")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTURL).
		SetClientID("imu-sim-" + uuid.NewString()[:8])

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)

	log.Printf("imu_sim: publishing to %s on %s every %s", cfg.MQTTTopic, cfg.MQTTURL, *interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-sigCh:
			log.Println("imu_sim: shutting down")
			return
		case <-ticker.C:
			token := client.Publish(cfg.MQTTTopic, 0, false, nextPayload(seq))
			token.Wait()
			if token.Error() != nil {
				log.Printf("imu_sim: publish error: %v", token.Error())
			}
			seq++
		}
	}
}

// nextPayload generates one wire message. The variant cycles so every
// decode path on the dashboard side gets exercised.
func nextPayload(seq int) []byte {
	phase := float64(seq) / 20 * 2 * math.Pi

	ax := 0.05 * math.Sin(phase)
	ay := 0.05 * math.Cos(phase)
	az := 1 + 0.01*math.Sin(phase/3)
	gx := 30 * math.Sin(phase)
	gy := 30 * math.Cos(phase)
	gz := 5 * math.Sin(phase/2)

	var msg map[string]any
	switch seq % 4 {
	case 0:
		msg = map[string]any{"ax": ax, "ay": ay, "az": az, "gx": gx, "gy": gy, "gz": gz}
	case 1:
		msg = map[string]any{
			"ax_mg":  int(math.Round(ax * 1000)),
			"ay_mg":  int(math.Round(ay * 1000)),
			"az_mg":  int(math.Round(az * 1000)),
			"gx_cds": int(math.Round(gx * 100)),
			"gy_cds": int(math.Round(gy * 100)),
			"gz_cds": int(math.Round(gz * 100)),
		}
	case 2:
		// accel only: the gyro chart gets a gap
		msg = map[string]any{"ax": ax, "ay": ay, "az": az}
	case 3:
		msg = map[string]any{
			"gx_cds": int(math.Round(gx * 100)),
			"gy_cds": int(math.Round(gy * 100)),
			"gz_cds": int(math.Round(gz * 100)),
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("imu_sim: marshal error: %v", err)
		return nil
	}
	return data
}
