// Package config loads the site configuration from _config.yml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/thomas11/blogcal/internal/calendar"
	"github.com/thomas11/blogcal/internal/post"
)

const (
	DefaultConfigName = "_config"
	EnvPrefix         = "BLOGCAL"
	Development       = "development"
)

type PostCalendar struct {
	ExcerptCharacterLimit  int `mapstructure:"excerpt_character_limit"`
	ContentsCharacterLimit int `mapstructure:"contents_character_limit"`
}

type Feed struct {
	RSS        bool `mapstructure:"rss"`
	Atom       bool `mapstructure:"atom"`
	PostLimit  int  `mapstructure:"post_limit"`
	Categories bool `mapstructure:"categories"`
}

type Config struct {
	Title        string `mapstructure:"title"`
	Description  string `mapstructure:"description"`
	URL          string `mapstructure:"url"`
	Author       string `mapstructure:"author"`
	Language     string `mapstructure:"language"`
	DefaultImage string `mapstructure:"default_image"`
	Timezone     string `mapstructure:"timezone"`
	Permalink    string `mapstructure:"permalink"`

	SourceDir string `mapstructure:"source_dir"`
	PublicDir string `mapstructure:"public_dir"`
	ThemeDir  string `mapstructure:"theme_dir"`

	PostCalendar PostCalendar `mapstructure:"post_calendar"`
	Feed         Feed         `mapstructure:"feed"`

	// Directory of the config file, or "." without one. Relative paths
	// are resolved against it.
	BaseDir string `mapstructure:"-"`

	// Build environment, from NODE_ENV. Exposed to templates and used to
	// skip feeds in development.
	Env string `mapstructure:"env"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == Development
}

// CalendarOptions returns the settings for the post calendar.
func (c *Config) CalendarOptions() calendar.Options {
	return calendar.Options{
		ExcerptCharacterLimit:  c.PostCalendar.ExcerptCharacterLimit,
		ContentsCharacterLimit: c.PostCalendar.ContentsCharacterLimit,
		Timezone:               c.Timezone,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "My Blog")
	v.SetDefault("url", "http://localhost:4000/")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("permalink", post.DefaultPermalink)
	v.SetDefault("source_dir", "source")
	v.SetDefault("public_dir", "public")
	v.SetDefault("theme_dir", "themes/default")
	v.SetDefault("post_calendar.excerpt_character_limit", 0)
	v.SetDefault("post_calendar.contents_character_limit", calendar.DefaultContentsCharacterLimit)
	v.SetDefault("feed.rss", true)
	v.SetDefault("feed.atom", true)
	v.SetDefault("feed.post_limit", 20)
	v.SetDefault("feed.categories", false)
	v.SetDefault("env", Development)
}

// Load reads the configuration. An empty path looks for _config.yml in the
// working directory; a missing default file is not an error. Environment
// variables prefixed with BLOGCAL_ override file values, and NODE_ENV sets
// the build environment.
func Load(path string, logger *log.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("env", "NODE_ENV"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Warn("No config file found, using defaults")
	} else {
		logger.Debug("Using config file", "path", v.ConfigFileUsed())
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&conf); err != nil {
		return nil, err
	}

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := "."
	if used := v.ConfigFileUsed(); used != "" {
		baseDir = filepath.Dir(used)
	}
	conf.BaseDir = baseDir
	conf.SourceDir = normalizePath(conf.SourceDir, baseDir)
	conf.PublicDir = normalizePath(conf.PublicDir, baseDir)
	conf.ThemeDir = normalizePath(conf.ThemeDir, baseDir)

	return &conf, nil
}

func validate(conf *Config) error {
	if conf.PostCalendar.ExcerptCharacterLimit < 0 {
		return fmt.Errorf("post_calendar.excerpt_character_limit must be non-negative")
	}
	if conf.PostCalendar.ContentsCharacterLimit < 0 {
		return fmt.Errorf("post_calendar.contents_character_limit must be non-negative")
	}
	if conf.Feed.PostLimit < 0 {
		return fmt.Errorf("feed.post_limit must be non-negative")
	}
	if conf.PublicDir == "" {
		return fmt.Errorf("public_dir is required")
	}
	return nil
}

func normalizePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
