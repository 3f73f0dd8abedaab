package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all dashboard configuration values.
type Config struct {
	// MQTT
	MQTTURL      string
	MQTTTopic    string
	MQTTClientID string

	// Web Server
	WebServerPort int

	// Telemetry window
	MaxPoints      int
	EventQueueSize int
}

// Defaults applied before the config file and environment are read.
const (
	DefaultMQTTURL        = "tcp://localhost:1883"
	DefaultMQTTTopic      = "jaeoh/imu"
	DefaultMQTTClientID   = "imu-dashboard"
	DefaultWebServerPort  = 8080
	DefaultMaxPoints      = 300
	DefaultEventQueueSize = 256
)

func defaults() *Config {
	return &Config{
		MQTTURL:        DefaultMQTTURL,
		MQTTTopic:      DefaultMQTTTopic,
		MQTTClientID:   DefaultMQTTClientID,
		WebServerPort:  DefaultWebServerPort,
		MaxPoints:      DefaultMaxPoints,
		EventQueueSize: DefaultEventQueueSize,
	}
}

// Load reads the configuration file, applies the MQTT_URL and MQTT_TOPIC
// environment overrides, and validates the result. A missing file is not
// an error: defaults plus environment apply. The result is passed
// explicitly to the components that need it; there is no global config.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	file, err := os.Open(configPath)
	switch {
	case err == nil:
		defer file.Close()
		if err := cfg.parse(file); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// defaults + environment only
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) parse(file *os.File) error {
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := c.setValue(key, value); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_URL":
		c.MQTTURL = value
	case "MQTT_TOPIC":
		c.MQTTTopic = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Telemetry window
	case "MAX_POINTS":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MAX_POINTS %q: %w", value, err)
		}
		c.MaxPoints = n
	case "EVENT_QUEUE_SIZE":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid EVENT_QUEUE_SIZE %q: %w", value, err)
		}
		c.EventQueueSize = n

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// applyEnv overrides file values with the environment. The deployment
// configures the broker endpoint and topic this way.
func (c *Config) applyEnv() {
	if v := os.Getenv("MQTT_URL"); v != "" {
		c.MQTTURL = v
	}
	if v := os.Getenv("MQTT_TOPIC"); v != "" {
		c.MQTTTopic = v
	}
}

// validate checks that all fields hold usable values.
func (c *Config) validate() error {
	if c.MQTTURL == "" {
		return fmt.Errorf("MQTT_URL is required")
	}
	if c.MQTTTopic == "" {
		return fmt.Errorf("MQTT_TOPIC is required")
	}
	if c.MQTTClientID == "" {
		return fmt.Errorf("MQTT_CLIENT_ID is required")
	}
	if c.WebServerPort < 1 || c.WebServerPort > 65535 {
		return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", c.WebServerPort)
	}
	if c.MaxPoints < 1 {
		return fmt.Errorf("MAX_POINTS must be positive, got %d", c.MaxPoints)
	}
	if c.EventQueueSize < 1 {
		return fmt.Errorf("EVENT_QUEUE_SIZE must be positive, got %d", c.EventQueueSize)
	}
	return nil
}
