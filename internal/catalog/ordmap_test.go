package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_RoundTripPreservesKeyOrder(t *testing.T) {
	in := `{"b":1,"a":2,"c":3}`

	var m Map[int]
	require.NoError(t, json.Unmarshal([]byte(in), &m))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestMap_GetIsCaseInsensitive(t *testing.T) {
	var m Map[string]
	m.Set("Mars", "red")

	for _, key := range []string{"Mars", "mars", "MARS", "mArS"} {
		v, ok := m.Get(key)
		require.True(t, ok, "key %q", key)
		assert.Equal(t, "red", v)
	}

	_, ok := m.Get("venus")
	assert.False(t, ok)
}

func TestMap_SetKeepsStoredCasing(t *testing.T) {
	var m Map[int]
	m.Set("Mars", 1)
	m.Set("MARS", 2)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"Mars"}, m.Keys())

	v, ok := m.Get("mars")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMap_CloneIsIndependent(t *testing.T) {
	var m Map[int]
	m.Set("a", 1)

	c := m.Clone()
	c.Set("b", 2)
	c.Set("a", 9)

	assert.Equal(t, 1, m.Len())
	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestMap_EmptyMarshalsAsObject(t *testing.T) {
	var m Map[int]
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestMap_UnmarshalRejectsNonObject(t *testing.T) {
	var m Map[int]
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
}
