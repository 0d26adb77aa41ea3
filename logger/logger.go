package logger

import (
	"encoding/json"
	"io"
	"log"
	"maps"
	"os"
	"strings"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Logger writes one JSON object per line.
type Logger struct {
	level  Level
	logger *log.Logger
}

type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a logger filtering below the given level name. Unknown names fall back to INFO.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	return &Logger{
		level:  ParseLevel(level),
		logger: log.New(output, "", 0),
	}
}

// Discard returns a logger that drops everything, for tests and optional wiring.
func Discard() *Logger {
	return New("ERROR", io.Discard)
}

func ParseLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l.level <= level
}

func (l *Logger) write(level Level, message string, fields map[string]any) {
	if !l.Enabled(level) {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    fields,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf("[%s] %s (unencodable fields: %v)", entry.Level, message, err)
		return
	}
	l.logger.Println(string(data))
}

// merge copies extra into base; extra is the optional trailing fields argument.
func merge(base map[string]any, extra []map[string]any) map[string]any {
	if len(extra) > 0 && extra[0] != nil {
		if base == nil {
			base = make(map[string]any, len(extra[0]))
		}
		maps.Copy(base, extra[0])
	}
	return base
}

func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.write(DEBUG, message, merge(nil, fields))
}

func (l *Logger) Info(message string, fields ...map[string]any) {
	l.write(INFO, message, merge(nil, fields))
}

func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.write(WARN, message, merge(nil, fields))
}

func (l *Logger) Error(message string, fields ...map[string]any) {
	l.write(ERROR, message, merge(nil, fields))
}

// Effect logs a lifecycle event of one effect execution.
func (l *Logger) Effect(effectID, message string, fields ...map[string]any) {
	l.write(INFO, message, merge(map[string]any{
		"effect_id": effectID,
		"type":      "effect",
	}, fields))
}

// Action logs an update flowing through the dispatch pipeline. Debug level only.
func (l *Logger) Action(actionType string, fields ...map[string]any) {
	l.write(DEBUG, "action dispatched", merge(map[string]any{
		"action_type": actionType,
		"type":        "action",
	}, fields))
}

func (l *Logger) HTTP(method, path string, statusCode int, duration time.Duration, fields ...map[string]any) {
	l.write(INFO, "HTTP request completed", merge(map[string]any{
		"http_method": method,
		"http_path":   path,
		"http_status": statusCode,
		"duration_ns": duration.Nanoseconds(),
		"type":        "http_request",
	}, fields))
}
