// Package config loads lexipipe settings from an optional YAML file,
// LEXIPIPE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/level"
	"github.com/gaurav-prasanna/lexipipe/core/normalize"
	"github.com/gaurav-prasanna/lexipipe/core/tokenize"
	"github.com/gaurav-prasanna/lexipipe/logging"
)

// EnvPrefix prefixes every environment override, e.g. LEXIPIPE_FETCH_TIMEOUT.
const EnvPrefix = "LEXIPIPE"

// Config is the full set of settings.
type Config struct {
	Fetch     Fetch       `mapstructure:"fetch"`
	Clean     Clean       `mapstructure:"clean"`
	Tokenize  Tokenize    `mapstructure:"tokenize"`
	Lemma     Lemma       `mapstructure:"lemma"`
	Reference level.Paths `mapstructure:"reference"`
	Output    Output      `mapstructure:"output"`
	Site      Site        `mapstructure:"site"`
	Log       Log         `mapstructure:"log"`
}

type Fetch struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	UserAgent    string        `mapstructure:"user_agent"`
}

type Clean struct {
	Mode        string `mapstructure:"mode"`
	StripDigits bool   `mapstructure:"strip_digits"`
}

type Tokenize struct {
	Mode string `mapstructure:"mode"`
	POS  string `mapstructure:"pos"`
	// ChunkSize is the most words handed to the lemmatizer at once.
	ChunkSize int `mapstructure:"chunk_size"`
}

type Lemma struct {
	Model    string `mapstructure:"model"`
	Language string `mapstructure:"language"`
}

type Output struct {
	Dir     string `mapstructure:"dir"`
	Preview int    `mapstructure:"preview"`
}

type Site struct {
	MaxPages int     `mapstructure:"max_pages"`
	Workers  int     `mapstructure:"workers"`
	RPS      float64 `mapstructure:"rps"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key with its default. Keys must be known to
// viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.max_body_bytes", 10<<20)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("clean.mode", string(normalize.ModeText))
	v.SetDefault("clean.strip_digits", false)
	v.SetDefault("tokenize.mode", string(tokenize.ModePattern))
	v.SetDefault("tokenize.pos", "")
	v.SetDefault("tokenize.chunk_size", 2000)
	v.SetDefault("lemma.model", "prose")
	v.SetDefault("lemma.language", "")
	v.SetDefault("reference.noun", "")
	v.SetDefault("reference.adj", "")
	v.SetDefault("reference.verb", "")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.preview", 20)
	v.SetDefault("site.max_pages", 100)
	v.SetDefault("site.workers", 4)
	v.SetDefault("site.rps", 2.0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", string(logging.FormatText))
}

// Load reads configuration into v and decodes it. An explicit path must
// exist; without one, lexipipe.yaml is looked up in the working directory
// and $HOME/.config/lexipipe and is optional.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lexipipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexipipe")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return ErrInvalidMaxBodySize
	}
	if _, err := normalize.ParseMode(c.Clean.Mode); err != nil {
		return ErrInvalidCleanMode
	}
	if _, err := tokenize.ParseMode(c.Tokenize.Mode); err != nil {
		return ErrInvalidTokenizeMode
	}
	if c.Tokenize.POS != "" {
		if _, ok := core.ParsePOS(c.Tokenize.POS); !ok {
			return ErrInvalidPOS
		}
	}
	if c.Output.Preview < 0 {
		return ErrInvalidPreview
	}
	if c.Site.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Site.RPS < 0 {
		return ErrInvalidRate
	}
	if c.Site.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
