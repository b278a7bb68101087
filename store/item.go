package store

import "fmt"

// Item is a single document the way the store accepts and returns it:
// string keys mapping to primitives, with nested maps and sequences of
// the same.
type Item = map[string]any

// Safe converts v into the primitive set the store accepts. Maps recurse per
// value, sequences per element; strings, numbers, booleans and nil pass
// through unchanged; anything else is flattened to its string representation.
// Applying it twice yields the same result as once.
func Safe(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = Safe(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Safe(e)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out
	case nil:
		return nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SafeItem applies Safe to every attribute of item.
func SafeItem(item Item) Item {
	return Safe(map[string]any(item)).(map[string]any)
}
