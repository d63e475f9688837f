package exercises

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor(t *testing.T) {
	t.Parallel()
	extractor, err := NewExtractor(ExtractFile, `
function extract(spec)
  return "% " .. spec .. "\n\\begin{exercise}...\\end{exercise}"
end
`)
	require.NoError(t, err)

	out, err := extractor.Extract(`--prefix="" 2524 1331`)
	require.NoError(t, err)
	assert.Equal(t, "% --prefix=\"\" 2524 1331\n\\begin{exercise}...\\end{exercise}", out)

	// the state survives between calls
	out, err = extractor.Extract(`--prefix="" 1129`)
	require.NoError(t, err)
	assert.Equal(t, "% --prefix=\"\" 1129\n\\begin{exercise}...\\end{exercise}", out)
}

func TestExtractorMissingFunction(t *testing.T) {
	t.Parallel()
	_, err := NewExtractor(ExtractFile, `local x = 1`)
	require.Error(t, err)
	assert.Equal(t, `extract file "extract.lua" does not define the "extract" function`, err.Error())
}

func TestExtractorBadSource(t *testing.T) {
	t.Parallel()
	_, err := NewExtractor(ExtractFile, `function extract(`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot load extract file "extract.lua"`)
}

func TestExtractorRuntimeError(t *testing.T) {
	t.Parallel()
	extractor, err := NewExtractor(ExtractFile, `
function extract(spec)
  error("no such exercise")
end
`)
	require.NoError(t, err)

	_, err = extractor.Extract(`--prefix="" 9999`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exercise extraction failed")
}

func TestExtractorNoText(t *testing.T) {
	t.Parallel()
	extractor, err := NewExtractor(ExtractFile, `
function extract(spec)
  return nil
end
`)
	require.NoError(t, err)

	_, err = extractor.Extract(`--prefix="" 1`)
	require.Error(t, err)
	assert.Equal(t, "exercise extraction returned no text", err.Error())
}
