// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stdoutCore writes info messages, and debug messages in the verbose mode.
func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if verbose {
			return l == DebugLevel || l == InfoLevel
		}
		return l == InfoLevel
	})
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stdout), levels)
}

// stderrCore writes warnings and errors.
func stderrCore(stderr io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= WarnLevel
	})
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stderr), levels)
}

// consoleEncoder writes only the message, in the verbose mode the level is prepended.
func consoleEncoder(verbose bool) zapcore.Encoder {
	if verbose {
		return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			LevelKey:         "level",
			MessageKey:       "message",
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: "\t",
		})
	}
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})
}
