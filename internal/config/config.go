package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Email    EmailConfig    `yaml:"email" mapstructure:"email"`
	Outreach OutreachConfig `yaml:"outreach" mapstructure:"outreach"`
	Match    MatchConfig    `yaml:"match" mapstructure:"match"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// EmailConfig holds SES credentials and sender identity.
type EmailConfig struct {
	Region        string  `yaml:"region" mapstructure:"region"`
	AccessKey     string  `yaml:"access_key" mapstructure:"access_key"`
	SecretKey     string  `yaml:"secret_key" mapstructure:"secret_key"`
	FromAddress   string  `yaml:"from_address" mapstructure:"from_address"`
	FromName      string  `yaml:"from_name" mapstructure:"from_name"`
	ReplyTo       string  `yaml:"reply_to" mapstructure:"reply_to"`
	SendsPerSec   float64 `yaml:"sends_per_sec" mapstructure:"sends_per_sec"`
	SendBurst     int     `yaml:"send_burst" mapstructure:"send_burst"`
	DryRun        bool    `yaml:"dry_run" mapstructure:"dry_run"`
	SignupBaseURL string  `yaml:"signup_base_url" mapstructure:"signup_base_url"`
}

// OutreachConfig configures outreach policy.
type OutreachConfig struct {
	// DedupeSameTemplate suppresses repeat sends of the same template type
	// to the same identity, regardless of which brand triggered them.
	DedupeSameTemplate bool `yaml:"dedupe_same_template" mapstructure:"dedupe_same_template"`
	// DedupeWindowHours bounds the dedupe lookback; 0 means forever.
	DedupeWindowHours int `yaml:"dedupe_window_hours" mapstructure:"dedupe_window_hours"`
}

// MatchConfig holds scoring weights and tier thresholds.
type MatchConfig struct {
	NicheWeight      float64 `yaml:"niche_weight" mapstructure:"niche_weight"`
	FollowerWeight   float64 `yaml:"follower_weight" mapstructure:"follower_weight"`
	EngagementWeight float64 `yaml:"engagement_weight" mapstructure:"engagement_weight"`
	PlatformWeight   float64 `yaml:"platform_weight" mapstructure:"platform_weight"`
	KeywordWeight    float64 `yaml:"keyword_weight" mapstructure:"keyword_weight"`

	PerfectThreshold float64 `yaml:"perfect_threshold" mapstructure:"perfect_threshold"`
	StrongThreshold  float64 `yaml:"strong_threshold" mapstructure:"strong_threshold"`
	SignalThreshold  float64 `yaml:"signal_threshold" mapstructure:"signal_threshold"`

	// RankWorkers shards corpus scoring across goroutines.
	RankWorkers int `yaml:"rank_workers" mapstructure:"rank_workers"`
}

// ExtractConfig configures hub-page enrichment fetches.
type ExtractConfig struct {
	HubTimeoutSecs  int    `yaml:"hub_timeout_secs" mapstructure:"hub_timeout_secs"`
	HubMaxBodyBytes int64  `yaml:"hub_max_body_bytes" mapstructure:"hub_max_body_bytes"`
	UserAgent       string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig configures the webhook server.
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
	v.SetEnvPrefix("CREATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_name", "Glowlink")
	v.SetDefault("email.sends_per_sec", 5)
	v.SetDefault("email.send_burst", 10)
	v.SetDefault("email.signup_base_url", "https://glowlink.app/join")
	v.SetDefault("outreach.dedupe_same_template", true)
	v.SetDefault("outreach.dedupe_window_hours", 0)
	v.SetDefault("match.niche_weight", 0.30)
	v.SetDefault("match.follower_weight", 0.20)
	v.SetDefault("match.engagement_weight", 0.20)
	v.SetDefault("match.platform_weight", 0.15)
	v.SetDefault("match.keyword_weight", 0.15)
	v.SetDefault("match.perfect_threshold", 85)
	v.SetDefault("match.strong_threshold", 65)
	v.SetDefault("match.signal_threshold", 70)
	v.SetDefault("match.rank_workers", 8)
	v.SetDefault("extract.hub_timeout_secs", 8)
	v.SetDefault("extract.hub_max_body_bytes", 512*1024)
	v.SetDefault("extract.user_agent", "Mozilla/5.0 (compatible; creator-cli/1.0)")

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
