package client

import (
	"fmt"
	"regexp"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

// tokenPattern matches the access token in a logged request/response dump.
var tokenPattern = regexp.MustCompile(`(?i)(authorization\s*:\s*|access[_-]token["'=:\s]+)\S[^\r\n]*`)

// Logger for the HTTP client.
// All messages are logged with the debug level, the access token is masked.
type Logger struct {
	logger log.Logger
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log("HTTP", fmt.Sprintf(format, v...))
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log("HTTP-WARN", fmt.Sprintf(format, v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log("HTTP-ERROR", fmt.Sprintf(format, v...))
}

func (l *Logger) log(prefix, msg string) {
	l.logger.Debug(prefix + "\t" + maskSecrets(msg))
}

func maskSecrets(msg string) string {
	return tokenPattern.ReplaceAllString(msg, "$1*****")
}
