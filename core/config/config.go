package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/beInDev/vaultmp/core/database"
	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/server"
	"github.com/beInDev/vaultmp/core/storage"
	"github.com/beInDev/vaultmp/core/world"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the server.
// It is divided into partial configurations owned by their packages.
type Config struct {
	// Server holds the admin API and game listener settings.
	Server server.Config `mapstructure:"server"`
	// Game holds the gameplay defaults and world globals.
	Game world.Config `mapstructure:"game"`
	// Storage holds configuration for the mod object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the record database.
	Database database.Config `mapstructure:"database"`
	// Script holds the Lua and event journal settings.
	Script script.Config `mapstructure:"script"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SERVER_GAME_PORT -> server.game_port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every section that can be checked without I/O.
func (c *Config) Validate() error {
	return errors.Join(c.Server.Validate(), c.Game.Validate())
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set a default, even empty, to register the key for AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
