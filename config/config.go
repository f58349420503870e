package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Matching MatchingConfig `mapstructure:"matching"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig holds the HTTP delivery configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	FrontendDir    string   `mapstructure:"frontend_dir"`
	UploadDir      string   `mapstructure:"upload_dir"`
	Debug          bool     `mapstructure:"debug"`
}

// SourcesConfig holds the source-site client configuration
type SourcesConfig struct {
	PromesseBaseURL string        `mapstructure:"promesse_base_url"`
	RusticaBaseURL  string        `mapstructure:"rustica_base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	PolitenessDelay time.Duration `mapstructure:"politeness_delay"`
	ProfilePath     string        `mapstructure:"profile_path"`
}

// MatchingConfig holds the cross-site identity matching configuration
type MatchingConfig struct {
	MinConfidence  int    `mapstructure:"min_confidence"`
	FuzzyThreshold int    `mapstructure:"fuzzy_threshold"`
	CachePath      string `mapstructure:"cache_path"`
}

// StorageConfig holds the sqlite persistence configuration
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// loadEnvFile loads a local .env file when present. Variables already
// set in the environment are never overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/plantheque/")

	// Environment variable settings
	v.SetEnvPrefix("PLANTHEQUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("server.frontend_dir", "./static")
	v.SetDefault("server.upload_dir", "./uploads")
	v.SetDefault("server.debug", false)

	// Source site defaults
	v.SetDefault("sources.promesse_base_url", "https://www.promessedefleurs.com")
	v.SetDefault("sources.rustica_base_url", "https://www.rustica.fr")
	v.SetDefault("sources.request_timeout", "15s")
	v.SetDefault("sources.politeness_delay", "2s")

	// Matching defaults
	v.SetDefault("matching.min_confidence", 60)
	v.SetDefault("matching.fuzzy_threshold", 80)
	v.SetDefault("matching.cache_path", "plant_mapping_cache.json")

	// Storage defaults
	v.SetDefault("storage.database_path", "./data/plantheque.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Sources.PromesseBaseURL == "" || config.Sources.RusticaBaseURL == "" {
		return fmt.Errorf("source site base URLs are required")
	}

	if config.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %s", config.Sources.RequestTimeout)
	}

	if config.Matching.MinConfidence < 0 || config.Matching.MinConfidence > 100 {
		return fmt.Errorf("min confidence must be between 0 and 100, got: %d", config.Matching.MinConfidence)
	}

	if config.Matching.FuzzyThreshold < 0 || config.Matching.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy threshold must be between 0 and 100, got: %d", config.Matching.FuzzyThreshold)
	}

	if config.Matching.CachePath == "" {
		return fmt.Errorf("match cache path is required")
	}

	if config.Storage.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}

	return nil
}
