package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

func TestCreateFile(t *testing.T) {
	t.Parallel()
	f := CreateFile(`path`, `content`).SetDescription(`desc`)
	assert.Equal(t, `path`, f.Path)
	assert.Equal(t, `desc`, f.Desc)
	assert.Equal(t, `content`, f.Content)
}

func TestCreateJsonFile(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	f := CreateJsonFile(`path`, m).SetDescription(`desc`)
	assert.Equal(t, `path`, f.Path)
	assert.Equal(t, `desc`, f.Desc)
	assert.Equal(t, m, f.Content)
}

func TestJsonFile_ToFile(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	m.Set(`foo`, `bar`)
	f, err := CreateJsonFile(`path`, m).SetDescription(`desc`).ToFile()
	require.NoError(t, err)
	assert.Equal(t, `path`, f.Path)
	assert.Equal(t, `desc`, f.Desc)
	assert.Equal(t, "{\n  \"foo\": \"bar\"\n}\n", f.Content)
}

func TestFile_ToJsonFile(t *testing.T) {
	t.Parallel()
	f, err := CreateFile(`path`, `{"foo": "bar"}`).SetDescription(`desc`).ToJsonFile()
	require.NoError(t, err)
	assert.Equal(t, `bar`, f.Content.GetOrNil(`foo`))

	_, err = CreateFile(`path`, `{"foo":`).SetDescription(`some`).ToJsonFile()
	require.Error(t, err)
	assert.Equal(t, "some file \"path\" is invalid:\n- unexpected end of JSON input, offset: 7", err.Error())
}
