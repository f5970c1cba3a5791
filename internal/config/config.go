package config

import (
	"os"
	"time"
)

type Config struct {
	ServerPort         string
	DatabaseURL        string
	BackupDir          string
	AutoExportInterval time.Duration
}

func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "./card-spend-tracker.db"),
		BackupDir:          getEnv("BACKUP_DIR", "./backups"),
		AutoExportInterval: getDuration("AUTO_EXPORT_INTERVAL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a Go duration string; "0" or "off" disables the
// auto export.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "off" {
		return 0
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
