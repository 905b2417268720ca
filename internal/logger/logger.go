package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"

	"github.com/hashir13-debug/bites-tracking/internal/config"
)

// Setup configures the standard logrus logger: level, formatter, and an
// optional rotating log file alongside stdout.
func Setup(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(Formatter(cfg.Format))
	log.SetOutput(Output(cfg.File))
	return nil
}

// Formatter returns the logrus formatter for the configured format name
func Formatter(format string) log.Formatter {
	if format == "json" {
		return &log.JSONFormatter{TimestampFormat: time.RFC3339}
	}
	return &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}

// Output writes to stdout and, when file is set, to a lumberjack rotator
func Output(file string) io.Writer {
	if file == "" {
		return os.Stdout
	}
	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, rotator)
}
