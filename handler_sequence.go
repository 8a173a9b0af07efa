package gohint

import (
	"reflect"
	"strconv"

	"github.com/reoring/gohint/i18n"
	"github.com/reoring/gohint/internal/repr"
)

func init() {
	register(SignList, Category{Check: isList, Cause: causeList})
	register(SignTuple, Category{Check: isTuple, Cause: causeTuple})
}

func isList(e *Engine, pith any, children []Hint) bool {
	if !hasOriginKind(pith, SignList) {
		return false
	}
	rv := reflect.ValueOf(pith)
	for i := 0; i < rv.Len(); i++ {
		if !e.Is(rv.Index(i).Interface(), children[0]) {
			return false
		}
	}
	return true
}

// causeList reports the first item, by ascending index, violating the item
// hint. Empty sequences satisfy any item hint.
func causeList(s *CauseSleuth) (string, error) {
	if cause, err := causeOrigin(s); cause != "" || err != nil {
		return cause, err
	}
	rv := reflect.ValueOf(s.pith)
	for i := 0; i < rv.Len(); i++ {
		cause, err := s.subCause(rv.Index(i).Interface(), s.children[0])
		if err != nil {
			return "", err
		}
		if cause != "" {
			return itemCause(s.pith, i, cause), nil
		}
	}
	return "", nil
}

func isTuple(e *Engine, pith any, children []Hint) bool {
	if !hasOriginKind(pith, SignTuple) {
		return false
	}
	rv := reflect.ValueOf(pith)
	if rv.Len() != len(children) {
		return false
	}
	for i, c := range children {
		if !e.Is(rv.Index(i).Interface(), c) {
			return false
		}
	}
	return true
}

// causeTuple reports an arity mismatch before looking at any item.
func causeTuple(s *CauseSleuth) (string, error) {
	if cause, err := causeOrigin(s); cause != "" || err != nil {
		return cause, err
	}
	rv := reflect.ValueOf(s.pith)
	if rv.Len() != len(s.children) {
		return msg(i18n.CodeTupleLength, map[string]string{
			"type": repr.TypeName(s.pith),
			"got":  strconv.Itoa(rv.Len()),
			"want": strconv.Itoa(len(s.children)),
		}), nil
	}
	for i, child := range s.children {
		cause, err := s.subCause(rv.Index(i).Interface(), child)
		if err != nil {
			return "", err
		}
		if cause != "" {
			return itemCause(s.pith, i, cause), nil
		}
	}
	return "", nil
}

func itemCause(pith any, index int, cause string) string {
	return msg(i18n.CodeSequenceItem, map[string]string{
		"type":  repr.TypeName(pith),
		"index": strconv.Itoa(index),
		"cause": cause,
	})
}
