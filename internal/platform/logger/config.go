package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	OutputStdout  = "stdout"
)

// LoggerConfig selects level, encoding and destination. It is filled from
// the service configuration; the zero value logs info-level JSON to stdout.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// DefaultConfig is used until the service configuration has been loaded.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{Level: "info", Format: FormatJSON, OutputFile: OutputStdout}
}

// normalized lower-cases the fields and fills blanks from DefaultConfig.
func (c LoggerConfig) normalized() LoggerConfig {
	def := DefaultConfig()
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	if c.Level == "" {
		c.Level = def.Level
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "text" {
		c.Format = FormatConsole
	}
	if c.Format != FormatConsole {
		c.Format = FormatJSON
	}
	if c.OutputFile = strings.TrimSpace(c.OutputFile); c.OutputFile == "" {
		c.OutputFile = def.OutputFile
	}
	return c
}

// ToZapLevel parses Level, accepting "warning" for warn. Unknown levels map
// to info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	level := strings.ToLower(c.Level)
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
