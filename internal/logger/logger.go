package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// Package loggers default to discard so library code can log before Init.
var (
	Info  = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn  = log.New(io.Discard, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	level LogLevel
)

func ParseLogLevel(lvl string) LogLevel {
	switch strings.ToUpper(lvl) {
	case "DEBUG":
		return LevelDebug
	case "ERROR":
		return LevelError
	case "WARN":
		return LevelWarn
	default:
		return LevelInfo
	}
}

func Init(logPath string, logLevel LogLevel) error {
	level = logLevel

	if err := os.MkdirAll(logPath, 0755); err != nil {
		return err
	}

	// Open log file with 0644 permissions
	logFile, err := os.OpenFile(
		filepath.Join(logPath, "medline_mirror.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
	if err != nil {
		return err
	}

	// Always enable Error logging
	Error.SetOutput(logFile)

	// Configure Warn logger based on level
	warnWriter := io.Discard
	if level >= LevelWarn {
		warnWriter = logFile
	}
	Warn.SetOutput(warnWriter)

	// Configure Info logger based on level
	infoWriter := io.Discard
	if level >= LevelInfo {
		infoWriter = logFile
	}
	Info.SetOutput(infoWriter)

	// Configure Debug logger based on level
	debugWriter := io.Discard
	if level >= LevelDebug {
		debugWriter = logFile
	}
	Debug.SetOutput(debugWriter)

	return nil
}
