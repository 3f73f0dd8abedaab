// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/imu_dashboard/internal/app"
	"github.com/relabs-tech/imu_dashboard/internal/config"
)

var configPath = flag.String("config", "dashboard_config.txt", "path to config file")

func main() {
	flag.Parse()

	log.Println("starting imu-dashboard web server (MQTT subscriber)")

	// Load configuration; MQTT_URL and MQTT_TOPIC env vars override the file
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunDashboard(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
