package gohint

import (
	"fmt"
	"reflect"

	"github.com/reoring/gohint/i18n"
	"github.com/reoring/gohint/internal/repr"
)

func init() {
	register(SignPointer, Category{Check: isPointer, Cause: causePointer})
	register(SignProtocol, Category{Check: isProtocol, Cause: causeProtocol})
}

func isPointer(e *Engine, pith any, children []Hint) bool {
	if !hasOriginKind(pith, SignPointer) {
		return false
	}
	rv := reflect.ValueOf(pith)
	return !rv.IsNil() && e.Is(rv.Elem().Interface(), children[0])
}

func causePointer(s *CauseSleuth) (string, error) {
	if cause, err := causeOrigin(s); cause != "" || err != nil {
		return cause, err
	}
	rv := reflect.ValueOf(s.pith)
	if rv.IsNil() {
		return msg(i18n.CodePointerNil, map[string]string{
			"actual":   s.describe(),
			"expected": HintString(s.hint),
		}), nil
	}
	cause, err := s.subCause(rv.Elem().Interface(), s.children[0])
	if err != nil || cause == "" {
		return "", err
	}
	return msg(i18n.CodePointerElem, map[string]string{
		"type":  repr.TypeName(s.pith),
		"cause": cause,
	}), nil
}

func isProtocol(_ *Engine, pith any, children []Hint) bool {
	return missingMethod(pith, children) == ""
}

// missingMethod returns the first listed method absent from pith's method
// set, or "" when all are present.
func missingMethod(pith any, methods []Hint) string {
	if pith == nil {
		if len(methods) == 0 {
			return ""
		}
		return fmt.Sprint(methods[0])
	}
	t := reflect.TypeOf(pith)
	for _, m := range methods {
		name := fmt.Sprint(m)
		if _, ok := t.MethodByName(name); !ok {
			return name
		}
	}
	return ""
}

func causeProtocol(s *CauseSleuth) (string, error) {
	name := missingMethod(s.pith, s.children)
	if name == "" {
		return "", nil
	}
	return msg(i18n.CodeProtocolMethod, map[string]string{
		"actual":   s.describe(),
		"method":   name,
		"protocol": HintString(s.hint),
	}), nil
}
