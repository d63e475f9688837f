// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"go.uber.org/zap"
)

// NewNopLogger drops all messages.
func NewNopLogger() Logger {
	return loggerFromZap(zap.NewNop())
}
