package gohint

import (
	"reflect"
	"slices"

	"github.com/reoring/gohint/i18n"
)

// matchesPlain is the direct type or equality test behind plain hints.
func matchesPlain(pith any, h Hint) bool {
	switch t := h.(type) {
	case nil, noneHint:
		return pith == nil
	case reflect.Type:
		if pith == nil {
			return false
		}
		pt := reflect.TypeOf(pith)
		if t.Kind() == reflect.Interface {
			return pt.Implements(t)
		}
		return pt.AssignableTo(t)
	}
	return reflect.DeepEqual(pith, h)
}

// causeType handles plain hints: classes, None and literal values.
func causeType(s *CauseSleuth) (string, error) {
	if matchesPlain(s.pith, s.hint) {
		return "", nil
	}
	code := i18n.CodeTypeMismatch
	switch s.hint.(type) {
	case nil, noneHint, reflect.Type:
	default:
		code = i18n.CodeValueMismatch
	}
	return msg(code, map[string]string{
		"actual":   s.describe(),
		"expected": HintString(s.hint),
	}), nil
}

// hasOriginKind reports whether pith's kind is one of sign's origin kinds.
func hasOriginKind(pith any, sign Sign) bool {
	if pith == nil {
		return false
	}
	return slices.Contains(sign.Origins(), reflect.TypeOf(pith).Kind())
}

// causeOrigin handles bare signs and is the first step of every container
// handler: the pith must at least be of an origin kind of the sign.
func causeOrigin(s *CauseSleuth) (string, error) {
	kinds := s.sign.Origins()
	if len(kinds) == 0 {
		return "", s.fail(ErrUnsupportedHint)
	}
	if hasOriginKind(s.pith, s.sign) {
		return "", nil
	}
	return msg(i18n.CodeOriginMismatch, map[string]string{
		"actual":   s.describe(),
		"expected": originString(kinds),
	}), nil
}
