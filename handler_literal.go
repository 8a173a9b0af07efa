package gohint

import (
	"reflect"
	"strings"

	"github.com/reoring/gohint/i18n"
)

func init() { register(SignLiteral, Category{Check: isLiteral, Cause: causeLiteral}) }

func isLiteral(_ *Engine, pith any, children []Hint) bool {
	for _, c := range children {
		if reflect.DeepEqual(pith, c) {
			return true
		}
	}
	return false
}

func causeLiteral(s *CauseSleuth) (string, error) {
	if isLiteral(s.engine, s.pith, s.children) {
		return "", nil
	}
	values := make([]string, len(s.children))
	for i, c := range s.children {
		values[i] = s.repr(c)
	}
	return msg(i18n.CodeLiteralMismatch, map[string]string{
		"actual":   s.describe(),
		"expected": strings.Join(values, ", "),
	}), nil
}
