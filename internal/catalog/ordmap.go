package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Map is a string-keyed collection that keeps the key order of the document
// it was decoded from, so a write-back never reorders the persisted file.
// Lookups are case-insensitive; stored key casing is preserved.
//
// encoding/json sorts plain map keys on marshal, which is why this type
// carries its own codec.
type Map[V any] struct {
	keys []string
	vals map[string]V
}

func (m Map[V]) Len() int { return len(m.keys) }

// Keys returns the stored keys in document order.
func (m Map[V]) Keys() []string { return slices.Clone(m.keys) }

func (m Map[V]) Get(key string) (V, bool) {
	k, ok := m.resolve(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[k], true
}

// Set replaces the value under an existing key (matched case-insensitively,
// keeping the stored casing) or appends a new entry.
func (m *Map[V]) Set(key string, v V) {
	if m.vals == nil {
		m.vals = make(map[string]V)
	}
	if k, ok := m.resolve(key); ok {
		m.vals[k] = v
		return
	}
	m.keys = append(m.keys, key)
	m.vals[key] = v
}

// Clone copies the key order and entries. Values are copied shallowly.
func (m Map[V]) Clone() Map[V] {
	return Map[V]{
		keys: slices.Clone(m.keys),
		vals: maps.Clone(m.vals),
	}
}

func (m Map[V]) resolve(key string) (string, bool) {
	if _, ok := m.vals[key]; ok {
		return key, true
	}
	for _, k := range m.keys {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

func (m Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Map[V]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	m.keys = nil
	m.vals = make(map[string]V)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		if _, dup := m.vals[key]; !dup {
			m.keys = append(m.keys, key)
		}
		m.vals[key] = v
	}

	_, err = dec.Token()
	return err
}
