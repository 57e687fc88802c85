package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Application configuration
	App AppConfig `json:"app"`

	// Attendance database configuration
	Database DatabaseConfig `json:"database"`

	// Login session configuration
	Auth AuthConfig `json:"auth"`

	// Janitor configuration
	Janitor JanitorConfig `json:"janitor"`

	// Highscore service configuration
	Highscore HighscoreConfig `json:"highscore"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         string        `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// LoggingConfig holds logging-specific configuration
type LoggingConfig struct {
	Level string `json:"level"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Debug       bool   `json:"debug"`
	PublicURL   string `json:"public_url"` // Base url students scan in the check-in QR code

	// Origins allowed to make credentialed cross-origin requests, empty means only the PUBLIC_URL origin
	AllowedOrigins []string `json:"allowed_origins"`
}

// DatabaseConfig holds the attendance database location
type DatabaseConfig struct {
	Path string `json:"path"`
}

type AuthConfig struct {
	SessionDuration time.Duration `json:"session_duration"` // for how long is an authenticated session valid
	CookieName      string        `json:"cookie_name"`
	BcryptCost      int           `json:"bcrypt_cost"`
}

// JanitorConfig holds cleanup intervals
type JanitorConfig struct {
	ShortCleanInterval time.Duration `json:"short_clean_interval"` // expired sessions
	FullCleanInterval  time.Duration `json:"full_clean_interval"`  // expired sessions + soft deleted rows
}

// HighscoreConfig holds configuration for the highscore server
type HighscoreConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	DatabasePath string `json:"database_path"`
	Backend      string `json:"backend"` // "sql" or "gorm"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// Get returns the singleton configuration instance
func Get() *Config {
	mu.RLock()
	if instance != nil {
		defer mu.RUnlock()
		return instance
	}
	mu.RUnlock()

	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		instance = loadConfig()
	})
	return instance
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "aanwezigheid"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("ENV", "development"),
			Debug:       getEnvAsBool("DEBUG", false),
			PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8080"),

			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "data/aanwezigheid.db"),
		},
		Auth: AuthConfig{
			SessionDuration: getEnvAsDuration("AUTH_SESSION_DURATION", 24*time.Hour),
			CookieName:      getEnv("AUTH_COOKIE_NAME", "auth_session_token"),
			BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
		},
		Janitor: JanitorConfig{
			ShortCleanInterval: getEnvAsDuration("JANITOR_SHORT_INTERVAL", 15*time.Minute),
			FullCleanInterval:  getEnvAsDuration("JANITOR_FULL_INTERVAL", 24*time.Hour),
		},
		Highscore: HighscoreConfig{
			Host:         getEnv("HIGHSCORE_HOST", "127.0.0.1"),
			Port:         getEnv("HIGHSCORE_PORT", "5001"),
			DatabasePath: getEnv("HIGHSCORE_DATABASE_PATH", "data/scores.db"),
			Backend:      getEnv("HIGHSCORE_BACKEND", "sql"),
		},
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	return cfg
}

// validate validates the configuration
func (c *Config) validate() error {
	// Validate server ports
	if !validPort(c.Server.Port) {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}
	if !validPort(c.Highscore.Port) {
		return fmt.Errorf("invalid highscore port: %s", c.Highscore.Port)
	}

	// Validate environment
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.App.Environment) {
		return fmt.Errorf("invalid environment: %s (must be one of: %s)",
			c.App.Environment, strings.Join(validEnvs, ", "))
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.Logging.Level, strings.Join(validLevels, ", "))
	}

	if u, err := url.Parse(c.App.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid PUBLIC_URL: %s", c.App.PublicURL)
	}

	for _, origin := range c.App.AllowedOrigins {
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			return fmt.Errorf("invalid CORS_ALLOWED_ORIGINS entry: %s (must look like https://host[:port])", origin)
		}
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH can not be empty")
	}

	if c.Auth.SessionDuration <= 0 {
		return fmt.Errorf("invalid AUTH_SESSION_DURATION: %s", c.Auth.SessionDuration)
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME can not be empty")
	}
	// bcrypt.MinCost and bcrypt.MaxCost
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST: %d (must be between 4 and 31)", c.Auth.BcryptCost)
	}

	if c.Janitor.ShortCleanInterval <= 0 || c.Janitor.FullCleanInterval <= 0 {
		return fmt.Errorf("janitor intervals must be positive")
	}

	validBackends := []string{"sql", "gorm"}
	if !slices.Contains(validBackends, c.Highscore.Backend) {
		return fmt.Errorf("invalid highscore backend: %s (must be one of: %s)",
			c.Highscore.Backend, strings.Join(validBackends, ", "))
	}

	return nil
}

// IsDevelopment returns true if the app is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the app is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetServerAddress returns the server address in the format "host:port"
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetHighscoreAddress returns the highscore server address in the format "host:port"
func (c *Config) GetHighscoreAddress() string {
	return fmt.Sprintf("%s:%s", c.Highscore.Host, c.Highscore.Port)
}

// CheckInURL returns the url a student opens to check in to a lesson
func (c *Config) CheckInURL(lessonID uint) string {
	return fmt.Sprintf("%s/checkin/%d", strings.TrimRight(c.App.PublicURL, "/"), lessonID)
}

// CORSOrigins returns the origins the attendance api accepts credentialed requests from
func (c *Config) CORSOrigins() []string {
	if len(c.App.AllowedOrigins) > 0 {
		return c.App.AllowedOrigins
	}
	u, err := url.Parse(c.App.PublicURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Scheme + "://" + u.Host}
}

// Reload reloads the configuration (useful for testing or after loading .env files)
func Reload() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	instance = nil
}

// ForceReload forces an immediate reload of the configuration
func ForceReload() {
	mu.Lock()
	defer mu.Unlock()
	instance = loadConfig()
}

func validPort(port string) bool {
	p, err := strconv.Atoi(port)
	return err == nil && p >= 1 && p <= 65535
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsList gets a comma separated environment variable, empty entries are skipped
func getEnvAsList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvAsInt gets an environment variable as int with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
