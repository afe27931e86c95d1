package validate

import (
	"encoding"
	"reflect"

	json "github.com/goccy/go-json"
)

/*
Data reports whether v can be stored without corruption.

A value is acceptable when one of the following holds:

 1. It belongs to the closed set of plain storable shapes: nil, bool,
    string, any integer or float width, and sequences/mappings of
    acceptable values. This is a static, enumerable check.
 2. It explicitly declares a serialization capability by implementing
    json.Marshaler or encoding.BinaryMarshaler.
 3. It provably survives a lossless serialize → deserialize round trip
    back into its own type.

Live handles that cannot be represented outside the process (functions,
channels, unsafe pointers) are always rejected, and so are
self-referential containers, which no serialization could unwind.
Rejection is a boolean signal rather than an error: the storing
operation degrades gracefully and reports false to its caller.
*/
func Data(v any) bool {
	return data(v, nil)
}

// seen holds the container pointers on the current traversal path, so a
// revisit means a cycle. Containers reached twice on separate paths
// (shared, not cyclic) stay acceptable.
func data(v any, seen map[uintptr]struct{}) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}

	// Capability markers: the value vouches for its own encoding.
	if _, ok := v.(json.Marshaler); ok {
		return true
	}
	if _, ok := v.(encoding.BinaryMarshaler); ok {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return data(rv.Elem().Interface(), seen)
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !data(rv.Index(i).Interface(), seen) {
				return false
			}
		}
		return true
	case reflect.Slice:
		ptr := rv.Pointer()
		if _, onPath := seen[ptr]; onPath {
			return false
		}
		if seen == nil {
			seen = make(map[uintptr]struct{})
		}
		seen[ptr] = struct{}{}
		for i := 0; i < rv.Len(); i++ {
			if !data(rv.Index(i).Interface(), seen) {
				return false
			}
		}
		delete(seen, ptr)
		return true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return false
		}
		ptr := rv.Pointer()
		if _, onPath := seen[ptr]; onPath {
			return false
		}
		if seen == nil {
			seen = make(map[uintptr]struct{})
		}
		seen[ptr] = struct{}{}
		iter := rv.MapRange()
		for iter.Next() {
			if !data(iter.Value().Interface(), seen) {
				return false
			}
		}
		delete(seen, ptr)
		return true
	}

	return roundTrips(v)
}

// roundTrips probes whether v survives an encode/decode cycle into a
// fresh value of its own type with nothing lost. Structs with
// unexported state fail the probe, which is exactly the point.
func roundTrips(v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	out := reflect.New(reflect.TypeOf(v))
	if err := json.Unmarshal(raw, out.Interface()); err != nil {
		return false
	}
	return reflect.DeepEqual(v, out.Elem().Interface())
}
