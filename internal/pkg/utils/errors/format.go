package errors

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

// FormatOption modifies the error output, see Format.
type FormatOption func(config *FormatConfig)

type FormatConfig struct {
	WithStack   bool
	WithUnwrap  bool
	AsSentences bool
}

// MessageFormatter formats each error message, see defaultMessageFormatter.
type MessageFormatter func(msg string, trace StackTrace, config FormatConfig) string

// PrefixFormatter formats a prefix followed by a list of errors, see defaultPrefixFormatter.
type PrefixFormatter func(prefix string) string

// FormatWithStack includes the error location in the output, wrapped errors are expanded.
func FormatWithStack() FormatOption {
	return func(config *FormatConfig) {
		config.WithStack = true
		config.WithUnwrap = true
	}
}

// FormatWithUnwrap expands each wrapped error to a bullet list item.
func FormatWithUnwrap() FormatOption {
	return func(config *FormatConfig) {
		config.WithUnwrap = true
	}
}

// FormatAsSentences capitalizes each message and ends it with a dot.
func FormatAsSentences() FormatOption {
	return func(config *FormatConfig) {
		config.AsSentences = true
	}
}

func Format(err error, opts ...FormatOption) string {
	w := NewWriter(defaultMessageFormatter, defaultPrefixFormatter, opts...)
	w.WriteError(err)
	return w.String()
}

func defaultMessageFormatter(msg string, trace StackTrace, config FormatConfig) string {
	if config.AsSentences {
		msg = firstToUpper(msg)
		if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, ":") {
			msg += "."
		}
	}
	if config.WithStack && len(trace) > 0 {
		// The frame is a return address, point it back to the call itself.
		pc := trace[0] - 1
		if fn := runtime.FuncForPC(pc); fn != nil {
			file, line := fn.FileLine(pc)
			msg = fmt.Sprintf("%s [%s:%d]", msg, file, line)
		}
	}
	return msg
}

func defaultPrefixFormatter(prefix string) string {
	return strings.TrimRight(prefix, ".,:") + ":"
}

func firstToUpper(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
