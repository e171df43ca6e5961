package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the consumed settings surface of the memory subsystem. The
// host owns the values; this loader just follows the usual config-file and
// environment conventions.
type Config struct {
	StorePath       string `yaml:"store_path" mapstructure:"store_path"`
	MinMemoryLength int    `yaml:"min_memory_length" mapstructure:"min_memory_length"`
	MaxContextChars int    `yaml:"max_context_chars" mapstructure:"max_context_chars"`
	MaxShowMemories int    `yaml:"max_show_memories" mapstructure:"max_show_memories"`

	AllowModelSaves bool `yaml:"allow_model_saves" mapstructure:"allow_model_saves"`
	TimeContext     bool `yaml:"timecontext" mapstructure:"timecontext"`
	DateContext     bool `yaml:"datecontext" mapstructure:"datecontext"`

	InjectGuide   bool     `yaml:"inject_guide" mapstructure:"inject_guide"`
	GuideLang     string   `yaml:"guide_lang" mapstructure:"guide_lang"`
	GuideOnce     bool     `yaml:"guide_once" mapstructure:"guide_once"`
	GuideMode     string   `yaml:"guide_mode" mapstructure:"guide_mode"`
	GuideTriggers []string `yaml:"guide_triggers" mapstructure:"guide_triggers"`
	GuideFile     string   `yaml:"guide_file" mapstructure:"guide_file"`

	BanPhrases []string `yaml:"ban_phrases" mapstructure:"ban_phrases"`
	Debug      bool     `yaml:"debug" mapstructure:"debug"`
}

func baseDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "memkeep")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "memkeep")
}

func DefaultConfig() *Config {
	return &Config{
		StorePath:       filepath.Join(baseDir(), "memories.json"),
		MinMemoryLength: 12,
		MaxContextChars: 1200,
		MaxShowMemories: 8,
		AllowModelSaves: true,
		TimeContext:     true,
		DateContext:     true,
		InjectGuide:     true,
		GuideLang:       "en",
		GuideOnce:       true,
		GuideMode:       "trigger",
		GuideTriggers: []string{
			"merke", "merk dir", "erinnere", "speichere",
			"remember", "store", "save this", "note this",
		},
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths
	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "memkeep"))
	}
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(home, ".config", "memkeep"))

	// Environment variables
	viper.SetEnvPrefix("MEMKEEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and clamps out-of-range values.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("config: store_path is required")
	}
	c.GuideLang = strings.ToLower(strings.TrimSpace(c.GuideLang))
	if c.GuideLang == "" {
		c.GuideLang = "en"
	}
	c.GuideMode = strings.ToLower(strings.TrimSpace(c.GuideMode))
	switch c.GuideMode {
	case "trigger", "always":
	case "":
		c.GuideMode = "trigger"
	default:
		return fmt.Errorf("config: guide_mode %q is invalid (must be trigger or always)", c.GuideMode)
	}
	if c.MinMemoryLength < 1 {
		c.MinMemoryLength = 12
	}
	if c.MaxContextChars < 0 {
		c.MaxContextChars = 0
	}
	if c.MaxShowMemories < 1 {
		c.MaxShowMemories = 8
	}
	return nil
}
