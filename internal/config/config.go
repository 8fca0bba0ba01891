package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	NLMHost         string
	NLMUser         string
	NLMPassword     string
	ServerDir       string
	DBPath          string
	OutputPath      string
	LogPath         string
	LogLevel        string
	DownloadLimit   int
	ExcludeSuffixes []string
}

// Load returns a Config struct populated from the environment. Missing
// required variables are reported together in one error.
func Load() (*Config, error) {
	c := &Config{}

	var missingVars []string

	// Required variables
	c.NLMHost = getEnvOrDefault("NLM_HOST", "")
	if c.NLMHost == "" {
		missingVars = append(missingVars, "NLM_HOST")
	}

	c.ServerDir = getEnvOrDefault("NLM_SERVER_DIR", "")
	if c.ServerDir == "" {
		missingVars = append(missingVars, "NLM_SERVER_DIR")
	}

	c.DBPath = getEnvOrDefault("DB_PATH", "")
	if c.DBPath == "" {
		missingVars = append(missingVars, "DB_PATH")
	}

	c.OutputPath = getEnvOrDefault("OUTPUT_PATH", "")
	if c.OutputPath == "" {
		missingVars = append(missingVars, "OUTPUT_PATH")
	}

	c.LogPath = getEnvOrDefault("LOG_PATH", "")
	if c.LogPath == "" {
		missingVars = append(missingVars, "LOG_PATH")
	}

	// Optional variables with defaults. The NLM public server takes
	// anonymous logins with an email-style password.
	c.NLMUser = getEnvOrDefault("NLM_USER", "anonymous")
	c.NLMPassword = getEnvOrDefault("NLM_PASSWORD", "anonymous@")
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", "INFO")
	c.DownloadLimit = getEnvAsIntOrDefault("DOWNLOAD_LIMIT", 0)

	excludes := getEnvOrDefault("EXCLUDE_SUFFIXES", "stats.html,.dat")
	c.ExcludeSuffixes = strings.Split(excludes, ",")

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return c, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
