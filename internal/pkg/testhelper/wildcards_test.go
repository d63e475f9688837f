package testhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWildcardToRegexp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `foo [^\r\n]+ bar \d+`, WildcardToRegexp(`foo %s bar %d`))
	assert.Equal(t, `100%`, WildcardToRegexp(`100%%`))
}

func TestWildcardsCompareMatch(t *testing.T) {
	t.Parallel()
	require.NoError(t, WildcardsCompare("foo %s baz", "foo bar baz"))
	require.NoError(t, WildcardsCompare("version %d.%d.%d", "version 1.23.4"))
	require.NoError(t, WildcardsCompare("before\n%A\nafter", "before\nline1\nline2\nafter"))
	require.NoError(t, WildcardsCompare("abc", "  abc\n"))
}

func TestWildcardsCompareMismatch(t *testing.T) {
	t.Parallel()
	err := WildcardsCompare("foo %d baz", "foo bar baz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Diff:")
	assert.Contains(t, err.Error(), "- foo␣%d␣baz")
	assert.Contains(t, err.Error(), "+ foo␣bar␣baz")
}

func TestAssertWildcards(t *testing.T) {
	t.Parallel()
	mocked := newMockedT()
	AssertWildcards(mocked, "expected %s", "expected value", "Unexpected output.")
	assert.Equal(t, "", mocked.buf.String())

	AssertWildcards(mocked, "expected", "actual", "Unexpected output.")
	assert.Contains(t, mocked.buf.String(), "Unexpected output.")
}
