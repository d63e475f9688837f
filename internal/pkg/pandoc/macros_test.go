package pandoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacroExpander(t *testing.T) {
	t.Parallel()
	macros, err := NewMacroExpander(MacrosFile, `
function expand(text)
  return (string.gsub(text, "@VIDEO@(%S+)", '<iframe src="%1"></iframe>'))
end
`)
	require.NoError(t, err)

	out, err := macros.Expand("intro\n@VIDEO@https://example.com/1\noutro")
	require.NoError(t, err)
	assert.Equal(t, "intro\n<iframe src=\"https://example.com/1\"></iframe>\noutro", out)

	// State survives between calls
	out, err = macros.Expand("plain text")
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)
}

func TestMacroExpanderPatternLibrary(t *testing.T) {
	t.Parallel()
	// Macros lean on the pattern functions, the VM must provide them all.
	macros, err := NewMacroExpander(MacrosFile, `
function expand(text)
  local out = {}
  for id in string.gmatch(text, "@EX@(%d+)") do
    table.insert(out, string.format("exercise %s", id))
  end
  local title = string.match(text, "^# ([^\n]+)")
  return title .. ": " .. table.concat(out, ", ")
end
`)
	require.NoError(t, err)

	out, err := macros.Expand("# Week 1\n@EX@12 and @EX@34")
	require.NoError(t, err)
	assert.Equal(t, "Week 1: exercise 12, exercise 34", out)
}

func TestMacroExpanderMissingFunction(t *testing.T) {
	t.Parallel()
	_, err := NewMacroExpander(MacrosFile, `x = 1`)
	require.Error(t, err)
	assert.Equal(t, `macro file "expand-macros.lua" does not define the "expand" function`, err.Error())
}

func TestMacroExpanderBadSource(t *testing.T) {
	t.Parallel()
	_, err := NewMacroExpander(MacrosFile, `function expand(`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot load macro file "expand-macros.lua"`)
}

func TestMacroExpanderRuntimeError(t *testing.T) {
	t.Parallel()
	macros, err := NewMacroExpander(MacrosFile, `function expand(text) error("broken macro") end`)
	require.NoError(t, err)

	_, err = macros.Expand("text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "macro expansion failed")
}

func TestMacroExpanderNoText(t *testing.T) {
	t.Parallel()
	macros, err := NewMacroExpander(MacrosFile, `function expand(text) return nil end`)
	require.NoError(t, err)

	_, err = macros.Expand("text")
	require.Error(t, err)
	assert.Equal(t, "macro expansion returned no text", err.Error())
}
