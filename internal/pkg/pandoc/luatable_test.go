package pandoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

func testUrlMap() *orderedmap.OrderedMap {
	file := orderedmap.New()
	file.Set("id", 5)
	file.Set("url", "https://canvas.local/courses/7/files/5/download")
	quiz := orderedmap.New()
	quiz.Set("url", "https://canvas.local/courses/7/quizzes/20")
	data := orderedmap.New()
	data.Set("week1.pdf", file)
	data.Set("quiz/Midterm", quiz)
	return data
}

func TestLuaTable(t *testing.T) {
	t.Parallel()
	expected := `return{
["week1.pdf"]={
["id"]="5",["url"]="https://canvas.local/courses/7/files/5/download",}
,["quiz/Midterm"]={
["url"]="https://canvas.local/courses/7/quizzes/20",}
,}
`
	assert.Equal(t, expected, LuaTable(testUrlMap()))
}

func TestLuaTableEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "return{\n}\n", LuaTable(orderedmap.New()))
}

func TestWriteLuaTable(t *testing.T) {
	t.Parallel()
	fs, err := aferofs.NewMemoryFs(log.NewNopLogger(), "")
	require.NoError(t, err)

	require.NoError(t, WriteLuaTable(fs, testUrlMap()))

	file, err := fs.ReadFile(".canvas/filters/file.dict", "url dictionary")
	require.NoError(t, err)
	assert.Equal(t, LuaTable(testUrlMap()), file.Content)
}
