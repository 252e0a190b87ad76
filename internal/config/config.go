package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat      string
	Timezone        string
	DefaultLanguage string
}

// Load reads configuration from file and env. Env var overrides use prefix SUBSCO_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "subsco", "subsco.db"))
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.timezone", "Asia/Tokyo")
	v.SetDefault("ui.default_language", "ja")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SUBSCO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "subsco"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SUBSCO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
