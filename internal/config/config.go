// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
	Server  ServerConfig
	RAWG    RAWGConfig
	IGDB    IGDBConfig
	Report  ReportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// CatalogConfig holds game catalog configuration.
type CatalogConfig struct {
	// Path to the catalog JSON file.
	Path string
	// DataPath is the base directory for local data (covers, report database).
	DataPath string
	// WatchFile enables automatic reload when the catalog file changes.
	WatchFile bool
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins (default: *)
}

// RAWGConfig holds RAWG API configuration.
type RAWGConfig struct {
	// APIKey for api.rawg.io. Metadata lookups are disabled when empty.
	APIKey string
	// Translate enables pt-BR translation of fetched descriptions.
	Translate bool
}

// IGDBConfig holds IGDB/Twitch API configuration.
type IGDBConfig struct {
	// ClientID and ClientSecret for the Twitch OAuth client-credentials grant.
	// The cover proxy is disabled when either is empty.
	ClientID     string
	ClientSecret string
}

// ReportConfig holds error-report forwarding configuration.
type ReportConfig struct {
	// WebhookURL receives submitted reports. Reports are only recorded
	// locally when empty.
	WebhookURL string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	catalogPath := flag.String("catalog", "", "Path to the catalog JSON file")
	dataPath := flag.String("data-path", "", "Base path for local data storage")
	watchCatalog := flag.String("watch-catalog", "", "Reload catalog on file change (default: true)")
	serverName := flag.String("server-name", "", "Name for the server")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	// External API flags
	rawgKey := flag.String("rawg-api-key", "", "RAWG API key")
	rawgTranslate := flag.String("rawg-translate", "", "Translate RAWG descriptions to pt-BR (default: true)")
	igdbClientID := flag.String("igdb-client-id", "", "Twitch client ID for IGDB")
	igdbClientSecret := flag.String("igdb-client-secret", "", "Twitch client secret for IGDB")
	reportWebhookURL := flag.String("report-webhook-url", "", "Webhook URL for forwarding error reports")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Path:      getConfigValue(*catalogPath, "CATALOG_PATH", ""),
			DataPath:  getConfigValue(*dataPath, "DATA_PATH", ""),
			WatchFile: getBoolConfigValue(*watchCatalog, "WATCH_CATALOG", true),
		},
		Server: ServerConfig{
			Name:        getConfigValue(*serverName, "SERVER_NAME", "Gamedex Server"),
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitOrigins(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		RAWG: RAWGConfig{
			APIKey:    getConfigValue(*rawgKey, "RAWG_API_KEY", ""),
			Translate: getBoolConfigValue(*rawgTranslate, "RAWG_TRANSLATE", true),
		},
		IGDB: IGDBConfig{
			ClientID:     getConfigValue(*igdbClientID, "IGDB_CLIENT_ID", ""),
			ClientSecret: getConfigValue(*igdbClientSecret, "IGDB_CLIENT_SECRET", ""),
		},
		Report: ReportConfig{
			WebhookURL: getConfigValue(*reportWebhookURL, "REPORT_WEBHOOK_URL", ""),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate the catalog path.
	if err := cfg.expandCatalogPath(); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	// Expand the data path (defaults to ~/Gamedex).
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Catalog.Path == "" {
		return errors.New("catalog path is required (set CATALOG_PATH or -catalog)")
	}

	if c.Catalog.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	// IGDB requires both halves of the credential pair or neither.
	if (c.IGDB.ClientID == "") != (c.IGDB.ClientSecret == "") {
		return errors.New("IGDB_CLIENT_ID and IGDB_CLIENT_SECRET must be set together")
	}

	return nil
}

// CoversPath returns the directory where downloaded covers are stored.
func (c *Config) CoversPath() string {
	return filepath.Join(c.Catalog.DataPath, "covers")
}

// DatabasePath returns the path of the local SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Catalog.DataPath, "gamedex.db")
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandCatalogPath expands ~ and makes the path absolute.
// Leaves an empty path empty so Validate can report it as missing.
func (c *Config) expandCatalogPath() error {
	if c.Catalog.Path == "" {
		return nil
	}

	expanded, err := expandPath(c.Catalog.Path, "")
	if err != nil {
		return err
	}
	c.Catalog.Path = expanded
	return nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/Gamedex if not specified.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Gamedex")

	expanded, err := expandPath(c.Catalog.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Catalog.DataPath = expanded
	return nil
}

// splitOrigins splits a comma-separated origin list, trimming whitespace.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
