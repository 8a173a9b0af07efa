package gohint

import (
	"strconv"
	"strings"

	"github.com/reoring/gohint/i18n"
)

func init() { register(SignUnion, Category{Check: isUnion, Cause: causeUnion}) }

func isUnion(e *Engine, pith any, children []Hint) bool {
	for _, c := range children {
		if e.Is(pith, c) {
			return true
		}
	}
	return false
}

// causeUnion tries every branch in declaration order. Any satisfied branch
// satisfies the union; otherwise the engine's UnionPolicy picks the report.
func causeUnion(s *CauseSleuth) (string, error) {
	unit := s.engine.opts.IndentUnit
	causes := make([]string, 0, len(s.children))
	allPlain := true
	for _, child := range s.children {
		sub, err := s.Derive(Fields{FieldHint: child, FieldIndent: s.indent + unit})
		if err != nil {
			return "", err
		}
		cause, err := sub.Cause()
		if err != nil {
			return "", err
		}
		if cause == "" {
			return "", nil
		}
		if _, compliant := sub.Sign(); compliant {
			allPlain = false
		}
		causes = append(causes, cause)
	}

	if s.engine.opts.UnionPolicy == UnionAll {
		b := &strings.Builder{}
		b.WriteString(msg(i18n.CodeUnionAll, map[string]string{
			"actual": s.describe(),
			"hint":   HintString(s.hint),
		}))
		for i, c := range causes {
			b.WriteString("\n" + s.indent + unit)
			b.WriteString(msg(i18n.CodeUnionBranch, map[string]string{"index": strconv.Itoa(i), "cause": c}))
		}
		return b.String(), nil
	}
	if allPlain {
		names := make([]string, len(s.children))
		for i, c := range s.children {
			names[i] = HintString(c)
		}
		return msg(i18n.CodeTypeMismatch, map[string]string{
			"actual":   s.describe(),
			"expected": strings.Join(names, " or "),
		}), nil
	}
	return causes[len(causes)-1], nil
}
