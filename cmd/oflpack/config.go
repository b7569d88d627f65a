package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config is the oflpack configuration. Every key may be overridden by an
// OFLPACK_ prefixed environment variable, e.g. OFLPACK_LOG_LEVEL.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   FileLogConfig `mapstructure:"file"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	// Report logs the encoder counters once the command finishes.
	Report bool `mapstructure:"report"`
}

var (
	errBadOutputFormat = errors.New("unknown output format")
	errBadLogFormat    = errors.New("unknown log format")
)

// LoadConfig reads path, if given, over the built-in defaults and the
// environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("oflpack")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.filename", "oflpack.log")
	v.SetDefault("log.file.max_size", 10)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.max_age", 7)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("output.format", "hex")

	v.SetDefault("metrics.report", false)
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "hex", "dump", "raw":
	default:
		return errors.Wrapf(errBadOutputFormat, "%q", c.Output.Format)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(errBadLogFormat, "%q", c.Log.Format)
	}
	return nil
}
