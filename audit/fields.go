package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields is an order-preserving string-keyed map. The spec's wire shape
// (§6.4) calls each emission's payload an "order-preserving map of string
// keys to JSON-shaped values"; a bare Go map does not preserve iteration
// order, so Fields keeps keys in a parallel slice.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields builds a Fields from alternating key/value pairs, e.g.
// NewFields("event", "Key", "iteration", 3). Panics on an odd argument count
// or a non-string key, since both indicate a caller bug rather than a
// runtime condition.
func NewFields(kv ...any) Fields {
	if len(kv)%2 != 0 {
		panic("audit: NewFields requires an even number of arguments")
	}
	f := Fields{values: make(map[string]any, len(kv)/2)}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("audit: NewFields key %d is not a string", i/2))
		}
		f.Set(key, kv[i+1])
	}
	return f
}

// Set adds or overwrites key. Overwriting an existing key keeps its original
// position in iteration order.
func (f *Fields) Set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether it was present.
func (f Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns field keys in insertion order.
func (f Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// MarshalJSON walks keys in insertion order, unlike the default encoding of
// a Go map.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
