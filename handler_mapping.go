package gohint

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/reoring/gohint/i18n"
	"github.com/reoring/gohint/internal/repr"
)

func init() {
	register(SignMapping, Category{Check: isMapping, Cause: causeMapping})
	register(SignSet, Category{Check: isSet, Cause: causeSet})
}

func isMapping(e *Engine, pith any, children []Hint) bool {
	if len(children) < 2 || !hasOriginKind(pith, SignMapping) {
		return false
	}
	iter := reflect.ValueOf(pith).MapRange()
	for iter.Next() {
		if !e.Is(iter.Key().Interface(), children[0]) || !e.Is(iter.Value().Interface(), children[1]) {
			return false
		}
	}
	return true
}

// causeMapping walks pairs in sorted key order, checking each key before its
// value, and reports the first failure.
func causeMapping(s *CauseSleuth) (string, error) {
	if len(s.children) < 2 {
		return "", s.fail(ErrMalformedHint)
	}
	if cause, err := causeOrigin(s); cause != "" || err != nil {
		return cause, err
	}
	rv := reflect.ValueOf(s.pith)
	for _, k := range sortedKeys(rv) {
		key := k.Interface()
		cause, err := s.subCause(key, s.children[0])
		if err != nil {
			return "", err
		}
		if cause != "" {
			return msg(i18n.CodeMappingKey, map[string]string{
				"type":  repr.TypeName(s.pith),
				"cause": cause,
			}), nil
		}
		cause, err = s.subCause(rv.MapIndex(k).Interface(), s.children[1])
		if err != nil {
			return "", err
		}
		if cause != "" {
			return msg(i18n.CodeMappingValue, map[string]string{
				"type":  repr.TypeName(s.pith),
				"key":   s.repr(key),
				"cause": cause,
			}), nil
		}
	}
	return "", nil
}

func isSet(e *Engine, pith any, children []Hint) bool {
	if !hasOriginKind(pith, SignSet) {
		return false
	}
	for _, k := range reflect.ValueOf(pith).MapKeys() {
		if !e.Is(k.Interface(), children[0]) {
			return false
		}
	}
	return true
}

func causeSet(s *CauseSleuth) (string, error) {
	if cause, err := causeOrigin(s); cause != "" || err != nil {
		return cause, err
	}
	for _, k := range sortedKeys(reflect.ValueOf(s.pith)) {
		cause, err := s.subCause(k.Interface(), s.children[0])
		if err != nil {
			return "", err
		}
		if cause != "" {
			return msg(i18n.CodeSetMember, map[string]string{
				"type":  repr.TypeName(s.pith),
				"cause": cause,
			}), nil
		}
	}
	return "", nil
}

// sortedKeys returns map keys in a deterministic order: numbers and strings
// by value, everything else by rendered form. Go maps have no native order.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrapInterface(a), unwrapInterface(b)
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return cmp.Compare(a.Int(), b.Int())
	case 1:
		return cmp.Compare(a.Uint(), b.Uint())
	case 2:
		return cmp.Compare(a.Float(), b.Float())
	case 3:
		return cmp.Compare(a.String(), b.String())
	}
	return cmp.Compare(repr.Value(a.Interface(), 0), repr.Value(b.Interface(), 0))
}

func unwrapInterface(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}

func keyRank(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	case reflect.String:
		return 3
	}
	return 4
}
