package argbind

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultDelimiter separates array elements unless configured otherwise.
const DefaultDelimiter = ","

// Config holds the array delimiter, the logger with its minimum level, and
// optional metrics.
type Config struct {
	delimiter string
	log       *zap.Logger
	level     zapcore.Level
	metrics   *Metrics
}

// NewConfig returns the address of a new default Config: comma delimiter, no
// logging, no metrics.
func NewConfig() *Config {
	return &Config{
		delimiter: DefaultDelimiter,
		log:       zap.NewNop(),
		level:     zapcore.InfoLevel,
	}
}

func (c *Config) copy() *Config {
	cc := *c
	return &cc
}

// Delimiter returns the array delimiter.
func (c *Config) Delimiter() string {
	return c.delimiter
}

// SetDelimiter changes the array delimiter. The delimiter is literal text,
// which can contain any character. Panics if the delimiter is empty.
func (c *Config) SetDelimiter(delimiter string) {
	if delimiter == "" {
		panic(fmt.Errorf("the array delimiter cannot be empty"))
	}
	c.delimiter = delimiter
}

// Logger returns the logger.
func (c *Config) Logger() *zap.Logger {
	return c.log
}

// SetLogger sets the logger receiving diagnostics. A nil logger disables
// logging.
func (c *Config) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// LogLevel returns the minimum level of messages logged.
func (c *Config) LogLevel() zapcore.Level {
	return c.level
}

// SetLogLevel sets the minimum level of messages logged. It cannot lower the
// level of the logger itself. Parsers log at debug level, so the default info
// level keeps them quiet.
func (c *Config) SetLogLevel(level zapcore.Level) {
	c.level = level
}

// Metrics returns the metrics, or nil.
func (c *Config) Metrics() *Metrics {
	return c.metrics
}

// SetMetrics sets metrics updated by every Parse call. Several parsers can
// share the same metrics.
func (c *Config) SetMetrics(m *Metrics) {
	c.metrics = m
}

// logger returns the logger used by parsers.
func (c *Config) logger() *zap.Logger {
	l := c.log
	// a core which does not enable the level is already stricter
	if l.Core().Enabled(c.level) {
		l = l.WithOptions(zap.IncreaseLevel(c.level))
	}
	return l.Named("argbind")
}
