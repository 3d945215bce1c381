package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Client      ClientConfig      `yaml:"client"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Relay       RelayConfig       `yaml:"relay"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	Path           string   `yaml:"path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Addr returns the listen address of the relay.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ClientConfig struct {
	SocketURL    string        `yaml:"socket_url"`
	Source       string        `yaml:"source"`
	File         string        `yaml:"file"`
	Command      []string      `yaml:"command"`
	LineInterval time.Duration `yaml:"line_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrentSummaries int `yaml:"max_concurrent_summaries"`
}

type RelayConfig struct {
	SingleFlightStop bool `yaml:"single_flight_stop"`
}

type GeminiConfig struct {
	Model   string        `yaml:"model"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Line source kinds accepted by client.source.
const (
	SourceDemo    = "demo"
	SourceStdin   = "stdin"
	SourceFile    = "file"
	SourceCommand = "command"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate checks required fields and fills defaults. A missing Gemini API key
// is not an error: the relay starts and every summary attempt fails soft.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Path == "" {
		c.Server.Path = "/ws"
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path must start with /")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Client.SocketURL == "" {
		c.Client.SocketURL = "http://localhost:4000"
	}
	if c.Client.Source == "" {
		c.Client.Source = SourceDemo
	}
	switch c.Client.Source {
	case SourceDemo, SourceStdin:
	case SourceFile:
		if c.Client.File == "" {
			return fmt.Errorf("client.file is required for source %q", SourceFile)
		}
	case SourceCommand:
		if len(c.Client.Command) == 0 {
			return fmt.Errorf("client.command is required for source %q", SourceCommand)
		}
	default:
		return fmt.Errorf("client.source %q is not one of demo, stdin, file, command", c.Client.Source)
	}
	if c.Client.LineInterval <= 0 {
		c.Client.LineInterval = 800 * time.Millisecond
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrentSummaries < 0 {
		return fmt.Errorf("performance.max_concurrent_summaries must not be negative")
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = summarizer.DefaultModel
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini.timeout must not be negative")
	}

	return nil
}

// HasAPIKey reports whether a Gemini credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}
