package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	logFile  *os.File
	minLevel LogLevel
}

// NewLogger writes colored lines to stdout and, when dir is not empty, JSON
// lines to dir/<service>-<date>.log.
func NewLogger(dir, service, level string) (*Logger, error) {
	logger := &Logger{
		out:      os.Stdout,
		minLevel: ParseLevel(level),
	}

	if dir == "" {
		return logger, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFileName := filepath.Join(dir, fmt.Sprintf("%s-%s.log", service, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	logger.logFile = logFile

	logger.Info("LOGGER", fmt.Sprintf("Log file: %s", logFileName))
	return logger, nil
}

// New returns a terminal-only logger writing to w. Used by tests and tools.
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{out: w, minLevel: level}
}

func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if level < l.minLevel {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     l.levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	terminalOutput := l.formatTerminalOutput(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprint(l.out, terminalOutput)
	if l.logFile != nil {
		l.logFile.WriteString(l.formatJSONOutput(entry) + "\n")
	}
}

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// levelColors holds the level and category colors per level name.
var levelColors = map[string][2]*color.Color{
	"DEBUG": {color.New(color.FgCyan), color.New(color.FgCyan, color.Bold)},
	"INFO":  {color.New(color.FgGreen), color.New(color.FgGreen, color.Bold)},
	"WARN":  {color.New(color.FgYellow), color.New(color.FgYellow, color.Bold)},
	"ERROR": {color.New(color.FgRed), color.New(color.FgRed, color.Bold)},
	"FATAL": {color.New(color.FgRed, color.Bold), color.New(color.FgRed, color.Bold)},
}

var (
	timeColor = color.New(color.FgBlue)
	fileColor = color.New(color.FgMagenta)
)

func (l *Logger) formatTerminalOutput(entry LogEntry) string {
	colors, ok := levelColors[entry.Level]
	if !ok {
		colors = levelColors["INFO"]
	}

	line := fmt.Sprintf("%s %s %s %s",
		timeColor.Sprint(entry.Timestamp[11:19]),
		colors[0].Sprintf("%-5s", entry.Level),
		colors[1].Sprintf("[%-10s]", entry.Category),
		entry.Message)
	if entry.File != "" && entry.Line > 0 {
		line += fileColor.Sprintf(" (%s:%d)", entry.File, entry.Line)
	}
	return line + "\n"
}

func (l *Logger) formatJSONOutput(entry LogEntry) string {
	jsonBytes, _ := json.Marshal(entry)
	return string(jsonBytes)
}

func (l *Logger) levelToString(level LogLevel) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "INFO"
}

func (l *Logger) Debug(category, message string) {
	l.log(DEBUG, category, message)
}

func (l *Logger) Info(category, message string) {
	l.log(INFO, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.log(WARN, category, message)
}

func (l *Logger) Error(category, message string) {
	l.log(ERROR, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	os.Exit(1)
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

// LogDatabase is used for the statement echo, so it logs at DEBUG.
func (l *Logger) LogDatabase(operation, table, message string) {
	l.log(DEBUG, "DATABASE", fmt.Sprintf("[%s] %s - %s", operation, table, message))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.Info("LOGGER", "Closing log file")
		l.logFile.Close()
		l.logFile = nil
	}
}
