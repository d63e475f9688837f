package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type tHelper interface {
	Helper()
}

// EscapeWhitespaces escapes all whitespaces except new line -> for clearer difference in diff output.
func EscapeWhitespaces(input string) string {
	return strings.NewReplacer(
		"\t", `→`,
		" ", `␣`,
	).Replace(input)
}

// WildcardToRegexp converts PHPUnit-like wildcards to regexp:
//
//	%e: directory separator
//	%s: one or more of anything except the end of line characters
//	%S: zero or more of anything except the end of line characters
//	%a: one or more of anything including the end of line characters
//	%A: zero or more of anything including the end of line characters
//	%w: zero or more white space characters
//	%i: a signed integer value
//	%d: an unsigned integer value
//	%x: one or more hexadecimal character
//	%f: a floating point number
//	%c: a single character of any sort
//	%%: a literal percent character
func WildcardToRegexp(pattern string) string {
	return strings.NewReplacer(
		`%e`, `\`+string(filepath.Separator),
		`%s`, `[^\r\n]+`,
		`%S`, `[^\r\n]*`,
		`%a`, `(?s:.+)`,
		`%A`, `(?s:.*)`,
		`%w`, `\s*`,
		`%i`, `[+-]?\d+`,
		`%d`, `\d+`,
		`%x`, `[0-9a-fA-F]+`,
		`%f`, `[+-]?(?:\d+(?:[.]\d*)?(?:[eE][+-]?\d+)?|[.]\d+(?:[eE][+-]?\d+)?)`,
		`%c`, `.`,
		`%%`, `%`,
	).Replace(regexp.QuoteMeta(pattern))
}

// WildcardsCompare compares the text with the expected pattern, see WildcardToRegexp.
func WildcardsCompare(expected, actual string) error {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)
	if regexp.MustCompile(`^` + WildcardToRegexp(expected) + `$`).MatchString(actual) {
		return nil
	}
	return errors.New("Diff:\n" + diffLines(expected, actual))
}

// AssertWildcards checks that the text matches the expected pattern, see WildcardToRegexp.
func AssertWildcards(t assert.TestingT, expected string, actual string, msg string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if err := WildcardsCompare(expected, actual); err != nil {
		assert.Fail(t, fmt.Sprintf("%s\n%s", msg, err.Error()))
		return false
	}
	return true
}

// diffLines pairs expected and actual lines and marks those that don't match.
func diffLines(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")
	count := len(expectedLines)
	if len(actualLines) > count {
		count = len(actualLines)
	}

	var out strings.Builder
	for i := 0; i < count; i++ {
		var expectedLine, actualLine string
		if i < len(expectedLines) {
			expectedLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actualLine = actualLines[i]
		}

		if regexp.MustCompile(`^` + WildcardToRegexp(strings.TrimRight(expectedLine, "\r")) + `$`).MatchString(strings.TrimRight(actualLine, "\r")) {
			out.WriteString("  " + EscapeWhitespaces(actualLine) + "\n")
			continue
		}
		if i < len(expectedLines) {
			out.WriteString("- " + EscapeWhitespaces(expectedLine) + "\n")
		}
		if i < len(actualLines) {
			out.WriteString("+ " + EscapeWhitespaces(actualLine) + "\n")
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}
