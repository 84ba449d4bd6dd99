package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const FormatText = "text"

// New создает логгер: JSON по умолчанию, текст для локальной разработки
func New(logLevel, format string) *logrus.Logger {
	return newWithOutput(logLevel, format, os.Stdout)
}

func newWithOutput(logLevel, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if format == FormatText {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
