package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App    App    `mapstructure:"app"`
	Server Server `mapstructure:"server"`
	AI     AI     `mapstructure:"ai"`
	Search Search `mapstructure:"search"`
	Fetch  Fetch  `mapstructure:"fetch"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS configuration for the front-end.
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AI holds LLM configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

// Search holds search provider configuration.
type Search struct {
	MaxResults  int                `mapstructure:"max_results"`
	RecencyDays int                `mapstructure:"recency_days"`
	Language    string             `mapstructure:"language"`
	Timeout     time.Duration      `mapstructure:"timeout"`
	// DirectTopics lists keywords that are already search-engine-friendly;
	// topics containing one skip query augmentation.
	DirectTopics []string           `mapstructure:"direct_topics"`
	Google       GoogleSearchConfig `mapstructure:"google"`
}

// GoogleSearchConfig holds Google Custom Search configuration.
type GoogleSearchConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
}

// Fetch holds article content fetch configuration.
type Fetch struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	MaxContent  int           `mapstructure:"max_content"`
}

var globalConfig *Config

// Load loads the configuration from .env, the config file and the environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists (for local development)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newsdigest")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.temperature", 0.3)

	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.recency_days", 7)
	viper.SetDefault("search.language", "en")
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.direct_topics", []string{})

	viper.SetDefault("fetch.timeout", "10s")
	viper.SetDefault("fetch.concurrency", 5)
	viper.SetDefault("fetch.max_content", 10000)
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// Google Custom Search - support multiple formats
	bindEnvKeys("search.google.api_key", []string{
		"GOOGLE_CUSTOM_SEARCH_API_KEY",
		"GOOGLE_CSE_API_KEY",
		"GOOGLE_SEARCH_API_KEY",
	})

	bindEnvKeys("search.google.search_id", []string{
		"GOOGLE_CUSTOM_SEARCH_ID",
		"GOOGLE_CSE_ID",
		"GOOGLE_SEARCH_ENGINE_ID",
	})
}

// bindEnvKeys binds the first set environment variable from the list to the config key.
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}
