package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/adintel/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store          StoreConfig          `yaml:"store" mapstructure:"store"`
	ScrapeCreators ScrapeCreatorsConfig `yaml:"scrapecreators" mapstructure:"scrapecreators"`
	Foreplay       ForeplayConfig       `yaml:"foreplay" mapstructure:"foreplay"`
	Aggregate      AggregateConfig      `yaml:"aggregate" mapstructure:"aggregate"`
	Scoring        ScoringConfig        `yaml:"scoring" mapstructure:"scoring"`
	Server         ServerConfig         `yaml:"server" mapstructure:"server"`
	Log            LogConfig            `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-persistence backend.
type StoreConfig struct {
	Driver      string           `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string           `yaml:"database_url" mapstructure:"database_url"`
	Pool        store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// ScrapeCreatorsConfig holds ScrapeCreators API settings for the primary
// ad-library sources.
type ScrapeCreatorsConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ForeplayConfig holds Foreplay API settings for the secondary enrichment
// source.
type ForeplayConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AggregateConfig tunes the fan-out and enrichment behavior.
type AggregateConfig struct {
	Country           string  `yaml:"country" mapstructure:"country"`
	Limit             int     `yaml:"limit" mapstructure:"limit"`
	SourceTimeoutSecs int     `yaml:"source_timeout_secs" mapstructure:"source_timeout_secs"`
	MinIntervalMS     int     `yaml:"min_interval_ms" mapstructure:"min_interval_ms"`
	EnrichCap         int     `yaml:"enrich_cap" mapstructure:"enrich_cap"`
	WindowDays        int     `yaml:"window_days" mapstructure:"window_days"`
	IngestSecondary   bool    `yaml:"ingest_secondary" mapstructure:"ingest_secondary"`
	CreditUSD         float64 `yaml:"credit_usd" mapstructure:"credit_usd"`
}

// ScoringConfig points at the relevance lookup tables; empty means the
// built-in defaults.
type ScoringConfig struct {
	TablesPath string `yaml:"tables_path" mapstructure:"tables_path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ADINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "adintel.db")
	v.SetDefault("scrapecreators.base_url", "https://api.scrapecreators.com")
	v.SetDefault("foreplay.base_url", "https://public.api.foreplay.co")
	v.SetDefault("aggregate.country", "US")
	v.SetDefault("aggregate.limit", 50)
	v.SetDefault("aggregate.source_timeout_secs", 30)
	v.SetDefault("aggregate.min_interval_ms", 100)
	v.SetDefault("aggregate.enrich_cap", 25)
	v.SetDefault("aggregate.window_days", 90)
	v.SetDefault("aggregate.credit_usd", 0.01)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
