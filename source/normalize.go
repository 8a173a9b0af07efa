package source

import (
	"reflect"

	"fortio.org/safecast"
	json "github.com/goccy/go-json"
)

// Normalize rewrites a decoded value tree into the canonical shapes described
// in the package documentation. It is idempotent.
func Normalize(v any, mode NumberMode) any {
	switch t := v.(type) {
	case nil, string, bool:
		return v
	case json.Number:
		return normalizeJSONNumber(t, mode)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Normalize(t[i], mode)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Normalize(vv, mode)
		}
		return out
	case map[any]any:
		return normalizeAnyMap(t, mode)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if mode == NumberFloat64 {
			return float64(rv.Int())
		}
		return normalizeInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if mode == NumberFloat64 {
			return float64(rv.Uint())
		}
		if i, err := safecast.Conv[int](rv.Uint()); err == nil {
			return i
		}
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface(), mode)
		}
		return out
	}
	return v
}

func normalizeInt(i int64) any {
	if n, err := safecast.Conv[int](i); err == nil {
		return n
	}
	return i
}

func normalizeJSONNumber(n json.Number, mode NumberMode) any {
	switch mode {
	case NumberJSONNumber:
		return n
	case NumberFloat64:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n
	}
	if i, err := n.Int64(); err == nil {
		return normalizeInt(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n
}

// normalizeAnyMap returns map[string]any when every key is a string and a
// normalized map[any]any otherwise.
func normalizeAnyMap(m map[any]any, mode NumberMode) any {
	allStrings := true
	for k := range m {
		if _, ok := k.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k.(string)] = Normalize(vv, mode)
		}
		return out
	}
	out := make(map[any]any, len(m))
	for k, vv := range m {
		out[Normalize(k, mode)] = Normalize(vv, mode)
	}
	return out
}
