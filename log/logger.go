package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// FormatType selects the rendering used for log lines.
type FormatType int

const (
	FormatTypeText FormatType = iota
	FormatTypeJSON
)

func (f FormatType) String() string {
	if f == FormatTypeJSON {
		return "json"
	}

	return "text"
}

// ParseFormatType parses the textual form used in config files.
func ParseFormatType(s string) (FormatType, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatTypeText, nil
	case "json":
		return FormatTypeJSON, nil
	default:
		return 0, fmt.Errorf("unknown log format %q", s)
	}
}

// Level is the subset of logrus levels exposed via configuration.
type Level int

const (
	LevelInfo Level = iota
	LevelTrace
	LevelDebug
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "info"
	}
}

// Config holds the configurable parts of the logger.
type Config struct {
	Level     Level      `default:"info"`
	Format    FormatType `default:"text"`
	Timestamp bool       `default:"true"`
}

// DefaultConfig returns the logger configuration used before any config file is loaded.
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Format: FormatTypeText, Timestamp: true}
}

// Logger is the global logging instance
//
//nolint:gochecknoglobals
var logger *logrus.Logger

//nolint:gochecknoinits
func init() {
	logger = logrus.New()
	ConfigureLogger(logger, DefaultConfig())
}

// Log returns the global logger
func Log() *logrus.Logger {
	return logger
}

// PrefixedLog returns the global logger with a "prefix" field, used to tag log
// lines by the component that produced them (resolver, server, config, ...).
func PrefixedLog(prefix string) *logrus.Entry {
	return logger.WithField("prefix", prefix)
}

// EscapeInput removes line breaks from input so attacker-controlled strings
// (qnames, config values) can't forge extra log lines.
func EscapeInput(input string) string {
	result := strings.ReplaceAll(input, "\n", "")
	result = strings.ReplaceAll(result, "\r", "")

	return result
}

// ConfigureLogger applies cfg to logger.
func ConfigureLogger(logger *logrus.Logger, cfg Config) {
	if level, err := logrus.ParseLevel(cfg.Level.String()); err != nil {
		logger.Fatalf("invalid log level %s %v", cfg.Level, err)
	} else {
		logger.SetLevel(level)
	}

	switch cfg.Format {
	case FormatTypeJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logFormatter := &prefixed.TextFormatter{
			TimestampFormat:  "2006-01-02 15:04:05",
			FullTimestamp:    true,
			ForceFormatting:  true,
			QuoteEmptyFields: true,
			DisableTimestamp: !cfg.Timestamp,
		}

		logFormatter.SetColorScheme(&prefixed.ColorScheme{
			PrefixStyle:    "blue+b",
			TimestampStyle: "white+h",
		})

		logger.SetFormatter(logFormatter)
	}
}

// Silence disables the logger output
func Silence() {
	logger.Out = io.Discard
}

// FatalOnError logs the message and exits the process if err is non-nil.
func FatalOnError(message string, err error) {
	if err == nil {
		return
	}

	if logger.Out == io.Discard {
		ConfigureLogger(logger, DefaultConfig())
	}

	logger.Fatal(message, err)
}
