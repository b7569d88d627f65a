package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a logrus logger writing to console and, when enabled,
// to a rotating file.
func NewLogger(c LogConfig, console io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	l := logrus.New()
	l.SetLevel(level)
	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	out := console
	if c.File.Enabled {
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   c.File.Filename,
			MaxSize:    c.File.MaxSize, // megabytes
			MaxBackups: c.File.MaxBackups,
			MaxAge:     c.File.MaxAge, // days
			Compress:   c.File.Compress,
		})
	}
	l.SetOutput(out)
	return l, nil
}
