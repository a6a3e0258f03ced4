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
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Gazetteer   GazetteerConfig   `yaml:"gazetteer" mapstructure:"gazetteer"`
	Anthropic   AnthropicConfig   `yaml:"anthropic" mapstructure:"anthropic"`
	Review      ReviewConfig      `yaml:"review" mapstructure:"review"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	ServiceArea ServiceAreaConfig `yaml:"service_area" mapstructure:"service_area"`
	Business    BusinessConfig    `yaml:"business" mapstructure:"business"`
	Notify      NotifyConfig      `yaml:"notify" mapstructure:"notify"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// GazetteerConfig configures the suburb dataset.
type GazetteerConfig struct {
	DatasetPath string `yaml:"dataset_path" mapstructure:"dataset_path"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	ReviewModel string `yaml:"review_model" mapstructure:"review_model"`
	MaxTokens   int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ReviewConfig configures the background review pipeline.
type ReviewConfig struct {
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// ScoringConfig holds the lead scorer's signal weights. The values are
// business heuristics, not derived constants; they can be tuned per
// deployment and the defaults are pinned by regression tests.
type ScoringConfig struct {
	Baseline           float64 `yaml:"baseline" mapstructure:"baseline"`
	VerifiedBonus      float64 `yaml:"verified_bonus" mapstructure:"verified_bonus"`
	RepeatBonus        float64 `yaml:"repeat_bonus" mapstructure:"repeat_bonus"`
	FirstTimerPenalty  float64 `yaml:"first_timer_penalty" mapstructure:"first_timer_penalty"`
	RatingBonus        float64 `yaml:"rating_bonus" mapstructure:"rating_bonus"`
	BudgetBonus        float64 `yaml:"budget_bonus" mapstructure:"budget_bonus"`
	NoBudgetPenalty    float64 `yaml:"no_budget_penalty" mapstructure:"no_budget_penalty"`
	DetailBonus        float64 `yaml:"detail_bonus" mapstructure:"detail_bonus"`
	VaguenessPenalty   float64 `yaml:"vagueness_penalty" mapstructure:"vagueness_penalty"`
	IntentBonus        float64 `yaml:"intent_bonus" mapstructure:"intent_bonus"`
	ResearchingPenalty float64 `yaml:"researching_penalty" mapstructure:"researching_penalty"`
	CloseBonus         float64 `yaml:"close_bonus" mapstructure:"close_bonus"`
	FarPenalty         float64 `yaml:"far_penalty" mapstructure:"far_penalty"`
}

// ServiceAreaConfig configures the service-area classifier.
type ServiceAreaConfig struct {
	BaseSuburb       string  `yaml:"base_suburb" mapstructure:"base_suburb"`
	BaseState        string  `yaml:"base_state" mapstructure:"base_state"`
	CoreRadiusKm     float64 `yaml:"core_radius_km" mapstructure:"core_radius_km"`
	ExtendedRadiusKm float64 `yaml:"extended_radius_km" mapstructure:"extended_radius_km"`
}

// BusinessConfig locates per-business context documents.
type BusinessConfig struct {
	ContextDir string `yaml:"context_dir" mapstructure:"context_dir"`
}

// NotifyConfig configures the push notification webhook.
type NotifyConfig struct {
	WebhookURL  string `yaml:"webhook_url" mapstructure:"webhook_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ServerConfig configures the HTTP server.
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
	v.SetEnvPrefix("LEADENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "lead-engine.db")
	v.SetDefault("gazetteer.dataset_path", "resources/suburbs.csv")
	v.SetDefault("anthropic.review_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 512)
	v.SetDefault("review.timeout_secs", 60)
	v.SetDefault("review.rate_per_second", 2)
	v.SetDefault("review.rate_burst", 4)
	v.SetDefault("service_area.core_radius_km", 20)
	v.SetDefault("service_area.extended_radius_km", 40)
	v.SetDefault("business.context_dir", "bootstrap")
	v.SetDefault("notify.timeout_secs", 10)
	v.SetDefault("server.port", 8002)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	for key, val := range defaultScoring() {
		v.SetDefault("scoring."+key, val)
	}

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

// DefaultScoring returns the stock signal weights.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Baseline:           5,
		VerifiedBonus:      1,
		RepeatBonus:        1,
		FirstTimerPenalty:  1,
		RatingBonus:        0.5,
		BudgetBonus:        1,
		NoBudgetPenalty:    0.5,
		DetailBonus:        1,
		VaguenessPenalty:   1,
		IntentBonus:        1,
		ResearchingPenalty: 1,
		CloseBonus:         0.5,
		FarPenalty:         1,
	}
}

// defaultScoring returns the stock weights keyed by config name.
func defaultScoring() map[string]float64 {
	d := DefaultScoring()
	return map[string]float64{
		"baseline":            d.Baseline,
		"verified_bonus":      d.VerifiedBonus,
		"repeat_bonus":        d.RepeatBonus,
		"first_timer_penalty": d.FirstTimerPenalty,
		"rating_bonus":        d.RatingBonus,
		"budget_bonus":        d.BudgetBonus,
		"no_budget_penalty":   d.NoBudgetPenalty,
		"detail_bonus":        d.DetailBonus,
		"vagueness_penalty":   d.VaguenessPenalty,
		"intent_bonus":        d.IntentBonus,
		"researching_penalty": d.ResearchingPenalty,
		"close_bonus":         d.CloseBonus,
		"far_penalty":         d.FarPenalty,
	}
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
