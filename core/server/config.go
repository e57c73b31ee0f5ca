package server

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds configuration for the admin HTTP server and the game listener.
type Config struct {
	// Port is the port of the admin API.
	Port string `mapstructure:"port" default:"8080"`
	// GamePort is the port game clients connect to over websocket.
	GamePort string `mapstructure:"game_port" default:"1770"`
	// GamePath is the websocket endpoint path.
	GamePath string `mapstructure:"game_path" default:"/ws"`
	// ApiKey is the secret key required to access the admin API.
	ApiKey string `mapstructure:"api_key" default:""`
	// QueueSize is the number of outbound frames buffered per connection.
	QueueSize int `mapstructure:"queue_size" default:"256"`
	// WriteTimeoutSeconds bounds each frame write and a blocked ordered send.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
	// ReadLimit is the largest inbound frame in bytes.
	ReadLimit int64 `mapstructure:"read_limit" default:"65536"`
}

// WriteTimeout returns WriteTimeoutSeconds as a duration.
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// Validate checks ports and limits.
func (c Config) Validate() error {
	for name, port := range map[string]string{"port": c.Port, "game_port": c.GamePort} {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("server.%s: invalid port %q", name, port)
		}
	}
	if c.Port == c.GamePort {
		return fmt.Errorf("server.port and server.game_port must differ, both are %s", c.Port)
	}
	if c.QueueSize < 0 || c.WriteTimeoutSeconds < 0 || c.ReadLimit < 0 {
		return fmt.Errorf("server limits must not be negative")
	}
	return nil
}
