package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger represents the application logger
type Logger struct {
	*logrus.Logger
	config LogConfig
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level       string
	Format      string // "json" or "text"
	LogToFile   bool
	LogFilePath string
}

// NewLogger creates a new logger instance
func NewLogger(config LogConfig) (*Logger, error) {
	log := logrus.New()

	// Set log level
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}
	log.SetLevel(level)

	// Always output to stdout first
	log.SetOutput(os.Stdout)

	// Set log format based on configuration
	switch strings.ToLower(config.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			ForceColors:     true,
			DisableQuote:    true,
		})
	default:
		// Default to a custom text format with clear timestamp
		log.SetFormatter(&CustomFormatter{})
	}

	// Optionally also log to file (in addition to stdout)
	if config.LogToFile && config.LogFilePath != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(config.LogFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	return &Logger{
		Logger: log,
		config: config,
	}, nil
}

// CustomFormatter provides a clean, timestamped format for console output
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	level := strings.ToUpper(entry.Level.String())

	// Color coding for different log levels
	var levelColor string
	switch entry.Level {
	case logrus.DebugLevel:
		levelColor = "\033[36m" // Cyan
	case logrus.InfoLevel:
		levelColor = "\033[32m" // Green
	case logrus.WarnLevel:
		levelColor = "\033[33m" // Yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = "\033[31m" // Red
	default:
		levelColor = "\033[0m" // Reset
	}

	resetColor := "\033[0m"

	// Build the log message
	msg := fmt.Sprintf("%s [%s%s%s] %s",
		timestamp,
		levelColor,
		level,
		resetColor,
		entry.Message)

	// Add fields if present
	if len(entry.Data) > 0 {
		msg += " |"
		for key, value := range entry.Data {
			msg += fmt.Sprintf(" %s=%v", key, value)
		}
	}

	msg += "\n"
	return []byte(msg), nil
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

// Lifecycle logging methods

// LogTokenDiscovered logs when a new token enters the watch list
func (l *Logger) LogTokenDiscovered(mint, name, symbol string, marketCap float64) {
	l.WithFields(logrus.Fields{
		"event":      "token_discovered",
		"mint":       mint,
		"name":       name,
		"symbol":     symbol,
		"market_cap": marketCap,
		"timestamp":  time.Now().Format(time.RFC3339),
	}).Info("🔍 New token discovered")
}

// LogWatchStarted logs when a token enters its evaluation window
func (l *Logger) LogWatchStarted(mint string, elapsed time.Duration) {
	l.WithFields(logrus.Fields{
		"event":       "watch_started",
		"mint":        mint,
		"elapsed_sec": elapsed.Seconds(),
		"timestamp":   time.Now().Format(time.RFC3339),
	}).Info("👀 Watch started")
}

// LogCriteriaReject logs when a token fails an entry criterion
func (l *Logger) LogCriteriaReject(mint, criterion, reason string) {
	l.WithFields(logrus.Fields{
		"event":     "criteria_reject",
		"mint":      mint,
		"criterion": criterion,
		"reason":    reason,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Debug("✗ Token rejected by criterion")
}

// LogAlertSent logs when an alert is delivered
func (l *Logger) LogAlertSent(mint, name string, marketCap, price float64) {
	l.WithFields(logrus.Fields{
		"event":      "alert_sent",
		"mint":       mint,
		"name":       name,
		"market_cap": marketCap,
		"price":      price,
		"timestamp":  time.Now().Format(time.RFC3339),
	}).Info("🚨 Alert sent")
}

// LogAlertDeliveryFailed logs when an alert could not be delivered
func (l *Logger) LogAlertDeliveryFailed(mint string, err error) {
	l.WithFields(logrus.Fields{
		"event":     "alert_delivery_failed",
		"mint":      mint,
		"timestamp": time.Now().Format(time.RFC3339),
	}).WithError(err).Error("❌ Alert delivery failed")
}

// LogTokenExpired logs when a token leaves the watch window without alerting
func (l *Logger) LogTokenExpired(mint string, elapsed time.Duration) {
	l.WithFields(logrus.Fields{
		"event":       "token_expired",
		"mint":        mint,
		"elapsed_min": elapsed.Minutes(),
		"timestamp":   time.Now().Format(time.RFC3339),
	}).Info("⌛ Token expired without alert")
}

// LogPositionOpened logs when a simulated position is opened
func (l *Logger) LogPositionOpened(mint, name string, entryPrice float64) {
	l.WithFields(logrus.Fields{
		"event":       "position_opened",
		"mint":        mint,
		"name":        name,
		"entry_price": entryPrice,
		"timestamp":   time.Now().Format(time.RFC3339),
	}).Info("📈 Position opened")
}

// LogPositionClosed logs when a simulated position is closed
func (l *Logger) LogPositionClosed(mint, outcome string, entryPrice, exitPrice, durationMin float64) {
	l.WithFields(logrus.Fields{
		"event":        "position_closed",
		"mint":         mint,
		"outcome":      outcome,
		"entry_price":  entryPrice,
		"exit_price":   exitPrice,
		"duration_min": durationMin,
		"timestamp":    time.Now().Format(time.RFC3339),
	}).Info("📉 Position closed")
}

// LogLedgerUpdate logs the simulation ledger after a recorded trade
func (l *Logger) LogLedgerUpdate(balance string, totalTrades, wins, losses int, winrate float64) {
	l.WithFields(logrus.Fields{
		"event":        "ledger_update",
		"balance":      balance,
		"total_trades": totalTrades,
		"wins":         wins,
		"losses":       losses,
		"winrate":      winrate,
		"timestamp":    time.Now().Format(time.RFC3339),
	}).Info("💰 Simulation ledger updated")
}

// LogError logs general errors with context
func (l *Logger) LogError(component, operation string, err error, fields logrus.Fields) {
	logFields := logrus.Fields{
		"event":     "error",
		"component": component,
		"operation": operation,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	// Merge additional fields
	for k, v := range fields {
		logFields[k] = v
	}

	l.WithFields(logFields).WithError(err).Error("💥 Component error")
}

// LogStartup logs application startup information
func (l *Logger) LogStartup(version string, dryRun bool) {
	l.WithFields(logrus.Fields{
		"event":     "startup",
		"version":   version,
		"dry_run":   dryRun,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("🚀 Bot starting up")
}

// LogShutdown logs application shutdown information
func (l *Logger) LogShutdown(reason string) {
	l.WithFields(logrus.Fields{
		"event":     "shutdown",
		"reason":    reason,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("🛑 Bot shutting down")
}

// Context-aware logging methods

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.WithField("component", component)
}

// WithToken returns a logger with token context
func (l *Logger) WithToken(mint string) *logrus.Entry {
	return l.WithField("mint", mint)
}

// LogConnection logs connection status
func (l *Logger) LogConnection(service, status string, details interface{}) {
	l.WithFields(logrus.Fields{
		"event":     "connection",
		"service":   service,
		"status":    status,
		"details":   details,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("🔗 Connection status")
}
