package github

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const loggerPrefix = "HTTP%s\t"

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(authorization:\s*(?:bearer|token)\s+)\S+`),
	regexp.MustCompile(`(?i)(access_token=)[^&\s]+`),
}

// Logger adapts zap to the resty logger and hides credentials.
type Logger struct {
	logger *zap.SugaredLogger
}

// Debugf logs a resty debug message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logWithoutSecrets("", format, v...)
}

// Warnf logs a resty warning at debug level.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logWithoutSecrets("-WARN", format, v...)
}

// Errorf logs a resty error at debug level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logWithoutSecrets("-ERROR", format, v...)
}

func (l *Logger) logWithoutSecrets(level string, format string, v ...interface{}) {
	v = append([]interface{}{level}, v...)
	l.logger.Debug(HideSecrets(fmt.Sprintf(loggerPrefix+format, v...)))
}

// HideSecrets masks tokens in a log message.
func HideSecrets(msg string) string {
	for _, re := range secretPatterns {
		msg = re.ReplaceAllString(msg, "${1}*****")
	}
	return msg
}
