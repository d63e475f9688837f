package orderedmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/umisama/go-regexpcache"
)

// Key is a path to a nested value, eg. Key{MapStep("parameters"), MapStep("foo"), SliceStep(123)}.
type Key []Step

type Step interface {
	String() string
}

// MapStep is a key in a map.
type MapStep string

// SliceStep is an index in a slice.
type SliceStep int

func (v MapStep) String() string {
	return string(v)
}

func (v MapStep) Key() string {
	return string(v)
}

func (v SliceStep) String() string {
	return fmt.Sprintf("[%d]", int(v))
}

func (v SliceStep) Index() int {
	return int(v)
}

func (k Key) String() string {
	var out strings.Builder
	for _, step := range k {
		switch step := step.(type) {
		case MapStep:
			if out.Len() > 0 {
				out.WriteString(".")
			}
			out.WriteString(step.String())
		case SliceStep:
			out.WriteString(step.String())
		default:
			panic(fmt.Errorf(`unexpected type "%T"`, step))
		}
	}
	return out.String()
}

func (k Key) Last() Step {
	if len(k) == 0 {
		return nil
	}
	return k[len(k)-1]
}

func (k Key) WithoutLast() Key {
	if len(k) == 0 {
		return k
	}
	return k[:len(k)-1]
}

// KeyFromStr parses key from the dotted notation, eg. "parameters.foo[123]".
func KeyFromStr(str string) Key {
	key := Key{}
	for _, part := range strings.Split(str, ".") {
		name := part
		var indices []int
		for {
			m := regexpcache.MustCompile(`^(.*)\[(\d+)\]$`).FindStringSubmatch(name)
			if m == nil {
				break
			}
			name = m[1]
			index, _ := strconv.Atoi(m[2])
			indices = append([]int{index}, indices...)
		}
		if name != "" {
			key = append(key, MapStep(name))
		}
		for _, index := range indices {
			key = append(key, SliceStep(index))
		}
	}
	return key
}
