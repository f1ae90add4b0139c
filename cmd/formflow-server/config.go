package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	formflow "github.com/goliatone/go-formflow"
	"github.com/spf13/viper"
)

// Config carries the server settings. Values are resolved from defaults,
// then an optional YAML config file, then FORMFLOW_* environment variables.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// ReadTimeout and WriteTimeout bound each HTTP exchange.
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownGrace is how long in-flight requests get to finish after a
	// termination signal.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`

	// ResetDelay overrides how long the contact confirmation stays on screen
	// before the form clears. Zero keeps the built-in delay.
	ResetDelay time.Duration `mapstructure:"reset_delay"`

	// FareTable points at a YAML fare table on disk. Empty uses the built-in
	// pricing.
	FareTable string `mapstructure:"fare_table"`

	// TemplatesDir points at an on-disk template override directory. Empty
	// serves the embedded templates.
	TemplatesDir string `mapstructure:"templates_dir"`

	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// loadConfig reads configuration from path when given, otherwise looks for
// formflow-server.yaml in the working directory. A missing default file is
// fine; a missing explicit file is an error.
func loadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("shutdown_grace", 5*time.Second)
	v.SetDefault("reset_delay", formflow.DefaultResetDelay)
	v.SetDefault("fare_table", "")
	v.SetDefault("templates_dir", "")
	v.SetDefault("allowed_origins", []string{"*"})

	v.SetEnvPrefix("FORMFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("formflow-server")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
