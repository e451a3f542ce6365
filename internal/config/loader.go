package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from config.yaml (searched in ./configs and
// the working directory), then applies environment overrides of the
// form SCHEMA_SCOUT_SERVER_PORT etc.
func Load() (*Config, error) {
	// A missing .env is fine; it only exists in development setups.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SCHEMA_SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeoutSeconds", 30)
	v.SetDefault("server.writeTimeoutSeconds", 60)
	v.SetDefault("server.idleTimeoutSeconds", 120)
	v.SetDefault("server.bodyLimit", "16M")
	v.SetDefault("server.enableCors", true)
	v.SetDefault("server.allowOrigins", []string{"*"})
	v.SetDefault("server.enableRequestLogging", true)
	v.SetDefault("server.enableCompression", true)

	v.SetDefault("processing.defaultThreshold", 0.1)
	v.SetDefault("processing.maxSchemaBytes", 8*1024*1024)

	v.SetDefault("storage.dataDir", "./data")
	v.SetDefault("storage.uploadDir", "uploads")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttlSeconds", 900)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Processing.DefaultThreshold < 0 || cfg.Processing.DefaultThreshold > 1 {
		return fmt.Errorf("processing.defaultThreshold must be in [0,1]: %f", cfg.Processing.DefaultThreshold)
	}
	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address required when cache is enabled")
	}
	return nil
}
