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
	GeoFusion GeoFusionConfig `yaml:"geofusion" mapstructure:"geofusion"`
	Enrich    EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GeoFusionConfig holds GeoFusion API credentials and client settings.
type GeoFusionConfig struct {
	Token     string  `yaml:"token" mapstructure:"token"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// EnrichConfig holds the default enrichment parameters. A profile file or
// command flags can override them per run.
type EnrichConfig struct {
	DispatchType string   `yaml:"dispatch_type" mapstructure:"dispatch_type"`
	Locomotion   string   `yaml:"locomotion" mapstructure:"locomotion"`
	Direction    string   `yaml:"direction" mapstructure:"direction"`
	Value        float64  `yaml:"value" mapstructure:"value"`
	Radius       float64  `yaml:"radius" mapstructure:"radius"`
	Categories   []string `yaml:"categories" mapstructure:"categories"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Workers int    `yaml:"workers" mapstructure:"workers"`
	Input   string `yaml:"input" mapstructure:"input"`
	Output  string `yaml:"output" mapstructure:"output"`
	Format  string `yaml:"format" mapstructure:"format"`
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
	v.SetEnvPrefix("CEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geofusion.token", "")
	v.SetDefault("geofusion.base_url", "https://api.geofusion.com.br")
	v.SetDefault("geofusion.rate_limit", 20)
	v.SetDefault("enrich.dispatch_type", "TIME")
	v.SetDefault("enrich.locomotion", "WALK")
	v.SetDefault("enrich.direction", "OUT")
	v.SetDefault("enrich.value", 5)
	v.SetDefault("enrich.radius", 100)
	v.SetDefault("enrich.categories", []string{
		"pacote_de_telefone_tv_e_internet",
		"telefone_celular",
		"telefone_fixo",
	})
	v.SetDefault("batch.workers", 10)
	v.SetDefault("batch.input", "data/raw/cep.txt")
	v.SetDefault("batch.output", "enriched.csv")
	v.SetDefault("batch.format", "csv")
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
