package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	// PromptPlaceholder marks where the document text is interpolated into
	// the summary prompt template.
	PromptPlaceholder = "{document}"

	defaultPort           = 8070
	defaultEnv            = "development"
	defaultDBHost         = "127.0.0.1"
	defaultDBPort         = 3306
	defaultDBUser         = "root"
	defaultDBName         = "irbrowse"
	defaultDBCharset      = "utf8mb4"
	defaultLLMHost        = "127.0.0.1"
	defaultLLMPort        = 8080
	defaultLLMModel       = "gpt-4o-mini"
	defaultLLMTimeout     = 60
	defaultCacheTTL       = 3600
	defaultSweepInterval  = 600
	defaultSnippetLength  = 400
	defaultPromptTemplate = "Provide a concise summary of the following document.\n\n" + PromptPlaceholder
)

// AppConfig holds runtime configuration, loaded from YAML and overridden by
// environment variables.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	LLM            LLMConfig      `yaml:"llm"`
	Cache          CacheConfig    `yaml:"cache"`
	Search         SearchConfig   `yaml:"search"`
}

type DatabaseConfig struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Params   map[string]string `yaml:"params"`
}

// LLMConfig describes the OpenAI-compatible text-generation service used for
// document summaries.
type LLMConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	PromptTemplate string `yaml:"prompt_summary"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type CacheConfig struct {
	ExpirationSeconds     int `yaml:"expiration_seconds"`
	DeleteExpiredInterval int `yaml:"delete_expired_interval_seconds"`
}

type SearchConfig struct {
	SnippetLength int `yaml:"snippet_length"`
}

// Load reads the YAML config at path (a missing file is not an error), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// environment-only configuration
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.LLM.Host == "" {
		c.LLM.Host = defaultLLMHost
	}
	if c.LLM.Port == 0 {
		c.LLM.Port = defaultLLMPort
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
	if strings.TrimSpace(c.LLM.PromptTemplate) == "" {
		c.LLM.PromptTemplate = defaultPromptTemplate
	}
	if c.Cache.ExpirationSeconds == 0 {
		c.Cache.ExpirationSeconds = defaultCacheTTL
	}
	if c.Cache.DeleteExpiredInterval == 0 {
		c.Cache.DeleteExpiredInterval = defaultSweepInterval
	}
	if c.Search.SnippetLength == 0 {
		c.Search.SnippetLength = defaultSnippetLength
	}
}

func (c *AppConfig) validate() error {
	if !strings.Contains(c.LLM.PromptTemplate, PromptPlaceholder) {
		return fmt.Errorf("summary prompt template must contain the %s placeholder", PromptPlaceholder)
	}
	if c.Cache.ExpirationSeconds < 0 {
		return fmt.Errorf("cache expiration must not be negative")
	}
	if c.Cache.DeleteExpiredInterval < 1 {
		return fmt.Errorf("cache sweep interval must be at least one second")
	}
	if c.Search.SnippetLength < 1 {
		return fmt.Errorf("snippet length must be positive")
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(c.Env) != "production"
}

// CacheTTL is the lifetime of a summary cache entry.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.ExpirationSeconds) * time.Second
}

// SweepInterval is the period of the expired-entry sweep job.
func (c *AppConfig) SweepInterval() time.Duration {
	return time.Duration(c.Cache.DeleteExpiredInterval) * time.Second
}

// LLMTimeout is the per-request deadline for summary generation.
func (c *AppConfig) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}
