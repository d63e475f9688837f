package orderedmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeysOrder(t *testing.T) {
	t.Parallel()
	m := New()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())

	// Overwrite keeps the position
	m.Set("a", 4)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 4, m.GetOrNil("a"))
}

func TestOrderedMapJSON(t *testing.T) {
	t.Parallel()
	in := `{"z":1,"a":{"y":2,"b":3},"list":[{"n":4,"m":5}]}`
	m := New()
	require.NoError(t, json.Unmarshal([]byte(in), m))
	assert.Equal(t, []string{"z", "a", "list"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestOrderedMapNested(t *testing.T) {
	t.Parallel()
	m := New()
	require.NoError(t, m.SetNested("parameters.foo", "bar"))

	value, found, err := m.GetNested("parameters.foo")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bar", value)

	_, found, _ = m.GetNested("parameters.missing")
	assert.False(t, found)
}

func TestOrderedMapClone(t *testing.T) {
	t.Parallel()
	m := New()
	sub := New()
	sub.Set("key", "value")
	m.Set("sub", sub)

	clone := m.Clone()
	sub.Set("key", "modified")
	assert.Equal(t, "value", clone.GetNestedOrNil("sub.key"))
}

func TestKeyFromStr(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Key{MapStep("foo")}, KeyFromStr("foo"))
	assert.Equal(t, Key{MapStep("foo"), MapStep("bar")}, KeyFromStr("foo.bar"))
	assert.Equal(t, Key{MapStep("foo"), SliceStep(123), MapStep("bar")}, KeyFromStr("foo[123].bar"))
	assert.Equal(t, "foo[123].bar", KeyFromStr("foo[123].bar").String())
}

func TestOrderedMapDelete(t *testing.T) {
	t.Parallel()
	m := New()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Delete("a")
	assert.Equal(t, []string{"b"}, m.Keys())
	_, found := m.Get("a")
	assert.False(t, found)
}
