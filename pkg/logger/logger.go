package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/CLDWare/aanwezigheid/config"
)

var (
	DebugLogger   *log.Logger
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
	initOnce      sync.Once
)

var logLevels = map[string]uint{
	"debug": 1,
	"info":  2,
	"warn":  3,
	"error": 4,
}

var currentLevel uint

// Init initializes the logger with configuration
func Init() {
	initOnce.Do(func() {
		DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ltime|log.Lshortfile)
		InfoLogger = log.New(os.Stdout, "INFO: ", log.Ltime|log.Lshortfile)
		WarningLogger = log.New(os.Stdout, "WARN: ", log.Ltime|log.Lshortfile)
		ErrorLogger = log.New(os.Stderr, "ERR: ", log.Ltime|log.Lshortfile)

		SetLevel(config.Get().Logging.Level)
	})
}

// SetLevel changes the minimum level that gets written
func SetLevel(level string) {
	currentLevel = logLevels[strings.ToLower(level)]
	if currentLevel == 0 {
		currentLevel = logLevels["info"]
	}
}

// SetOutput redirects every level to w, tests use this to silence or capture logs
func SetOutput(w io.Writer) {
	Init()
	DebugLogger.SetOutput(w)
	InfoLogger.SetOutput(w)
	WarningLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
}

func Debug(v ...any) {
	Init()
	if currentLevel <= logLevels["debug"] {
		DebugLogger.Output(2, fmt.Sprintln(v...))
	}
}

func Info(v ...any) {
	Init()
	if currentLevel <= logLevels["info"] {
		InfoLogger.Output(2, fmt.Sprintln(v...))
	}
}

func Warn(v ...any) {
	Init()
	if currentLevel <= logLevels["warn"] {
		WarningLogger.Output(2, fmt.Sprintln(v...))
	}
}

func Err(v ...any) {
	Init()
	if currentLevel <= logLevels["error"] {
		ErrorLogger.Output(2, fmt.Sprintln(v...))
	}
}
