package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/lazykit/kit"
	"github.com/ZanzyTHEbar/lazykit/kit/crawler"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Crawl  CrawlConfig  `mapstructure:"crawl"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// CrawlConfig stores crawler settings.
type CrawlConfig struct {
	IgnoreFile     string   `mapstructure:"ignoreFile"`
	Ignore         []string `mapstructure:"ignore"`
	FollowSymlinks bool     `mapstructure:"followSymlinks"`
	IncludeHidden  bool     `mapstructure:"includeHidden"`
	Attributes     bool     `mapstructure:"attributes"`
	MaxFileSize    int64    `mapstructure:"maxFileSize"`
}

// OutputConfig stores how crawl results are rendered.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	Snapshot bool   `mapstructure:"snapshot"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Output formats understood by the CLI.
var OutputFormats = []string{"json", "yaml", "tree"}

// LoadConfig reads configuration from file or environment variables.
// An explicit configPath must exist; otherwise the usual locations are
// searched and defaults are used when nothing is found.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", kit.DefaultAppName))
		v.AddConfigPath(kit.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("crawl.ignoreFile", kit.DefaultIgnoreFile)
	v.SetDefault("crawl.ignore", []string{})
	v.SetDefault("crawl.followSymlinks", true)
	v.SetDefault("crawl.includeHidden", true)
	v.SetDefault("crawl.attributes", false)
	v.SetDefault("crawl.maxFileSize", kit.DefaultMaxFileSize)
	v.SetDefault("output.format", kit.DefaultOutputFormat)
	v.SetDefault("output.snapshot", false)
	v.SetDefault("log.level", kit.DefaultLogLevel)

	v.SetEnvPrefix(kit.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // crawl.maxFileSize becomes LAZYKIT_CRAWL_MAXFILESIZE
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot act on.
func (c *Config) Validate() error {
	if !isOutputFormat(c.Output.Format) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	if c.Crawl.MaxFileSize < 0 {
		return fmt.Errorf("crawl.maxFileSize cannot be negative")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts the configured level name to a zerolog level.
func (l LogConfig) ParseLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Options converts the crawl settings to crawler options.
func (c CrawlConfig) Options(logger zerolog.Logger) []crawler.Option {
	return []crawler.Option{
		crawler.WithLogger(logger),
		crawler.WithIgnoreFile(c.IgnoreFile),
		crawler.WithIgnorePatterns(c.Ignore...),
		crawler.WithFollowSymlinks(c.FollowSymlinks),
		crawler.WithHidden(c.IncludeHidden),
		crawler.WithAttributes(c.Attributes),
		crawler.WithMaxFileSize(c.MaxFileSize),
	}
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
