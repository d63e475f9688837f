// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/ioutil"
)

// debugLogger stores messages in memory, per level, for assertions in tests.
type debugLogger struct {
	*zapLogger
	all       *ioutil.AtomicWriter
	debug     *ioutil.AtomicWriter
	info      *ioutil.AtomicWriter
	warn      *ioutil.AtomicWriter
	warnError *ioutil.AtomicWriter
	err       *ioutil.AtomicWriter
}

func NewDebugLogger() DebugLogger {
	l := &debugLogger{
		all:       ioutil.NewAtomicWriter(),
		debug:     ioutil.NewAtomicWriter(),
		info:      ioutil.NewAtomicWriter(),
		warn:      ioutil.NewAtomicWriter(),
		warnError: ioutil.NewAtomicWriter(),
		err:       ioutil.NewAtomicWriter(),
	}

	cores := zapcore.NewTee(
		debugCore(l.all, zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })),
		debugCore(l.debug, exactLevel(DebugLevel)),
		debugCore(l.info, exactLevel(InfoLevel)),
		debugCore(l.warn, exactLevel(WarnLevel)),
		debugCore(l.warnError, zap.LevelEnablerFunc(func(level zapcore.Level) bool { return level >= WarnLevel })),
		debugCore(l.err, exactLevel(ErrorLevel)),
	)

	l.zapLogger = loggerFromZap(zap.New(cores))
	return l
}

func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.all.ConnectTo(writer)
}

func (l *debugLogger) Truncate() {
	l.all.Truncate()
	l.debug.Truncate()
	l.info.Truncate()
	l.warn.Truncate()
	l.warnError.Truncate()
	l.err.Truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.readAndTruncate(l.all)
}

func (l *debugLogger) DebugMessages() string {
	return l.readAndTruncate(l.debug)
}

func (l *debugLogger) InfoMessages() string {
	return l.readAndTruncate(l.info)
}

func (l *debugLogger) WarnMessages() string {
	return l.readAndTruncate(l.warn)
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.readAndTruncate(l.warnError)
}

func (l *debugLogger) ErrorMessages() string {
	return l.readAndTruncate(l.err)
}

// readAndTruncate returns the writer content and truncates that writer only.
// The other levels keep their messages, a test can read them one by one.
func (l *debugLogger) readAndTruncate(w *ioutil.AtomicWriter) string {
	out := w.String()
	w.Truncate()
	return out
}

func debugCore(w io.Writer, enabler zapcore.LevelEnabler) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
	})
	return zapcore.NewCore(encoder, zapcore.AddSync(w), enabler)
}

func exactLevel(level zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == level
	})
}
