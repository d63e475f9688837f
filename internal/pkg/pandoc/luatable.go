package pandoc

import (
	"fmt"
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

// DictFile read by the href.lua filter, relative to the filters directory.
const DictFile = "file.dict"

// WriteLuaTable exports the url map for the href.lua filter
// as a "return {...}" Lua table literal next to the filters.
// The local backend writes through a rename, a concurrently running
// pandoc never sees a partial file.
func WriteLuaTable(fs filesystem.Fs, data *orderedmap.OrderedMap) error {
	path := filesystem.Join(filesystem.MetadataDir, manifest.FiltersDir, DictFile)
	return fs.WriteFile(filesystem.CreateFile(path, LuaTable(data)).SetDescription("url dictionary"))
}

// LuaTable serializes the map as a Lua table literal.
// Nested maps recurse, every other value is written as a quoted string.
func LuaTable(data *orderedmap.OrderedMap) string {
	var out strings.Builder
	out.WriteString("return")
	writeLuaTable(&out, data)
	return out.String()
}

func writeLuaTable(out *strings.Builder, data *orderedmap.OrderedMap) {
	out.WriteString("{\n")
	for _, key := range data.Keys() {
		value, _ := data.Get(key)
		fmt.Fprintf(out, `["%s"]=`, key)
		if nested, ok := value.(*orderedmap.OrderedMap); ok {
			writeLuaTable(out, nested)
		} else {
			fmt.Fprintf(out, `"%v"`, value)
		}
		out.WriteString(",")
	}
	out.WriteString("}\n")
}
