package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schema-scout/backend/internal/logger"
)

// Config is the full server configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    logger.Config    `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host                 string `mapstructure:"host"`
	Port                 int    `mapstructure:"port"`
	ReadTimeoutSeconds   int    `mapstructure:"readTimeoutSeconds"`
	WriteTimeoutSeconds  int    `mapstructure:"writeTimeoutSeconds"`
	IdleTimeoutSeconds   int    `mapstructure:"idleTimeoutSeconds"`
	BodyLimit            string `mapstructure:"bodyLimit"`
	EnableCORS           bool   `mapstructure:"enableCors"`
	AllowOrigins         []string `mapstructure:"allowOrigins"`
	EnableRequestLogging bool   `mapstructure:"enableRequestLogging"`
	EnableCompression    bool   `mapstructure:"enableCompression"`
}

// ProcessingConfig holds relevance engine defaults.
type ProcessingConfig struct {
	DefaultThreshold float64 `mapstructure:"defaultThreshold"`
	MaxSchemaBytes   int64   `mapstructure:"maxSchemaBytes"`
}

// StorageConfig holds filesystem locations.
type StorageConfig struct {
	DataDir   string `mapstructure:"dataDir"`
	UploadDir string `mapstructure:"uploadDir"`
}

// CacheConfig holds the optional Redis result cache settings.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

// GetServerAddr returns the host:port listen address.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetUploadDir returns the upload directory, resolved against DataDir
// when relative.
func (c *Config) GetUploadDir() string {
	if filepath.IsAbs(c.Storage.UploadDir) {
		return c.Storage.UploadDir
	}
	return filepath.Join(c.Storage.DataDir, c.Storage.UploadDir)
}

// EnsureDirectories creates all configured data directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Storage.DataDir, c.GetUploadDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}
