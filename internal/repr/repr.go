// Package repr renders arbitrary values for inclusion in human-readable
// causes. This package is internal and not part of the public API.
package repr

import (
	"fmt"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
)

// Value renders v compactly. Strings are quoted, scalars printed as-is and
// composites encoded as JSON when possible. A positive maxWidth truncates the
// result to that many display cells.
func Value(v any, maxWidth int) string {
	return truncate(render(v), maxWidth)
}

// TypeName returns the dynamic Go type of v, or "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return fmt.Sprint(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	case reflect.Type:
		return t.String()
	case error:
		return strconv.Quote(t.Error())
	case fmt.Stringer:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T value", v)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
