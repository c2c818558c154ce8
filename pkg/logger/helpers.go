package logger

import "github.com/rs/zerolog"

// LogRequest logs a handled HTTP request at a level matching its status
func LogRequest(method, path, requestID string, statusCode int, durationMs float64) {
	fields := map[string]interface{}{
		"method":      method,
		"path":        path,
		"request_id":  requestID,
		"status":      statusCode,
		"duration_ms": durationMs,
	}

	switch {
	case statusCode >= 500:
		GetLogger().ErrorWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		GetLogger().WarnWithFields("HTTP request client error", fields)
	default:
		GetLogger().InfoWithFields("HTTP request completed", fields)
	}
}

// LogFetch logs an upstream profile fetch outcome
func LogFetch(username string, success bool, err error) {
	log := GetLogger().WithFields(map[string]interface{}{
		"username": username,
		"success":  success,
	})

	if err != nil {
		log.WithError(err).Error("Profile fetch failed")
	} else {
		log.Info("Profile fetch completed")
	}
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
