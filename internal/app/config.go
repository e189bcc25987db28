package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		CORSOrigin string `toml:"cors_origin"`
	} `toml:"server"`

	Auth struct {
		EnableCache      bool   `toml:"enable_cache"`
		RedisURL         string `toml:"redis_url"`
		TokenKeyTemplate string `toml:"token_key_template"`
		CacheTTLSeconds  int    `toml:"cache_ttl_seconds"`
	} `toml:"auth"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Codes struct {
		Salt        string `toml:"salt"`
		DefaultName string `toml:"default_name"`
	} `toml:"codes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	if config.Codes.Salt == "" {
		return nil, fmt.Errorf("Code salt is not specified in config; rotating it later invalidates all issued codes")
	}
	if config.Server.CORSOrigin == "" {
		config.Server.CORSOrigin = "*"
	}
	if config.Codes.DefaultName == "" {
		config.Codes.DefaultName = "Exam User"
	}

	logger.Debug.Printf("Loaded config with salt of %d chars", len(config.Codes.Salt))

	return &config, nil
}
