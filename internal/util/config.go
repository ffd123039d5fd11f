package util

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	HTTPServerAddress      string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	AllowedOrigins         []string      `mapstructure:"ALLOWED_ORIGINS"`
	DefaultAuctionDuration time.Duration `mapstructure:"DEFAULT_AUCTION_DURATION"`
	ServerTimeInterval     time.Duration `mapstructure:"SERVER_TIME_INTERVAL"`
	AdminToken             string        `mapstructure:"ADMIN_TOKEN"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; every value has a default or can
// come from the environment. ADMIN_TOKEN is deliberately defaultless: when
// empty, the admin surface runs unprotected (local development).
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:5000")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("DEFAULT_AUCTION_DURATION", "1m")
	viper.SetDefault("SERVER_TIME_INTERVAL", "1s")
	viper.SetDefault("ADMIN_TOKEN", "")

	// Prefer environment variables over config file
	viper.AutomaticEnv()

	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return
		}
		err = nil
	}

	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}

	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.HTTPServerAddress == "" {
		return fmt.Errorf("HTTP_SERVER_ADDRESS is required")
	}
	if config.DefaultAuctionDuration < time.Minute {
		return fmt.Errorf("DEFAULT_AUCTION_DURATION must be at least one minute")
	}
	if config.ServerTimeInterval <= 0 {
		return fmt.Errorf("SERVER_TIME_INTERVAL must be a positive duration")
	}

	return nil
}

// DefaultAuctionMinutes is the configured default duration in whole minutes,
// the unit auction durations are expressed in.
func (c Config) DefaultAuctionMinutes() int64 {
	return int64(c.DefaultAuctionDuration / time.Minute)
}
