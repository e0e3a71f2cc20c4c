// Package flatten collapses nested JSON-decoded structures into single-level
// maps keyed by double-underscore-joined paths, keeping numeric leaves only.
package flatten

import "strings"

// Separator joins path segments in emitted keys.
const Separator = "__"

// Path is an immutable key path. Extend copies the backing slice, so derived
// paths never alias a sibling's segments.
type Path struct {
	segments []string
}

// Extend returns a new Path with seg appended.
func (p Path) Extend(seg string) Path {
	next := make([]string, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = seg
	return Path{segments: next}
}

// Key joins the path segments with the separator.
func (p Path) Key() string {
	return strings.Join(p.segments, Separator)
}

// Flatten collapses a nested structure into a single-level map from joined
// key paths to numeric leaf values. Non-numeric leaves are discarded. An
// empty or nil input yields an empty map. The accumulator is freshly
// constructed per call; nothing is shared across invocations.
func Flatten(data map[string]any) map[string]float64 {
	out := make(map[string]float64, len(data))
	walk(data, Path{}, out)
	return out
}

func walk(data map[string]any, prefix Path, out map[string]float64) {
	for key, value := range data {
		path := prefix.Extend(key)
		if n, ok := asNumber(value); ok {
			// Last write wins if two paths normalize to the same key.
			out[path.Key()] = n
			continue
		}
		if child, ok := value.(map[string]any); ok {
			walk(child, path, out)
		}
	}
}

// Merge unions the given maps with last-write-wins semantics on key
// collisions.
func Merge(maps ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Namespace returns a copy of m with prefix prepended to every key.
func Namespace(prefix string, m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[prefix+k] = v
	}
	return out
}

// Sum adds up every value in m.
func Sum(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// asNumber reports whether v is a numeric leaf. JSON decoding produces
// float64, but profile files and tests hand in native ints as well.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
