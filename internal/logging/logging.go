package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/saltyorg/todo-api/internal/config"
)

const (
	DefaultLogFilePath = "todoapi.log"
	DefaultMaxSizeMB   = 50
	DefaultMaxBackups  = 5
	DefaultMaxAgeDays  = 30

	timeFormat = "2006-01-02 15:04:05"
)

// Apply sets the global log level and output writers (console + rotating file).
// When cfg.File is empty, a default filename in the current working directory is used.
func Apply(cfg config.LogConfig) {
	applyLevel(cfg.Level)
	applyOutputs(os.Stdout, cfg)
}

func applyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func applyOutputs(console io.Writer, cfg config.LogConfig) {
	maxSize := DefaultMaxSizeMB
	if cfg.MaxSizeMB > 0 {
		maxSize = cfg.MaxSizeMB
	}
	maxBackups := DefaultMaxBackups
	if cfg.MaxBackups >= 0 {
		maxBackups = cfg.MaxBackups
	}
	maxAgeDays := DefaultMaxAgeDays
	if cfg.MaxAgeDays >= 0 {
		maxAgeDays = cfg.MaxAgeDays
	}

	logFilePath := cfg.File
	if logFilePath == "" {
		logFilePath = DefaultLogFilePath
	}

	consoleOutput := zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat}
	log.Logger = zerolog.New(consoleOutput).With().Timestamp().Logger()

	if err := ensureLogDir(logFilePath); err != nil {
		log.Error().Err(err).Str("path", logFilePath).Msg("Failed to prepare log directory; logging to console only")
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   cfg.Compress,
	}

	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: timeFormat,
		NoColor:    true,
	}

	multi := zerolog.MultiLevelWriter(consoleOutput, fileConsole)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
