package gohint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/gohint/internal/repr"
)

// Hint is a type hint. Plain hints are reflect.Type values, None, or literal
// values compared by equality. Compliant hints are Sign values, *Subscription,
// *ProtocolHint, or values implementing Hinter. *AnnotatedHint wraps any of
// these with metadata that never participates in checking.
type Hint = any

// Hinter lets user types act as compliant hints.
type Hinter interface {
	HintSign() Sign
	HintArgs() []Hint
}

type noneHint struct{}

func (noneHint) String() string { return "none" }

// None is the hint satisfied only by nil.
var None Hint = noneHint{}

// Common plain hints.
var (
	Any       = reflect.TypeOf((*any)(nil)).Elem()
	Int       = reflect.TypeOf(int(0))
	Int64     = reflect.TypeOf(int64(0))
	Float     = reflect.TypeOf(float64(0))
	String    = reflect.TypeOf("")
	Bool      = reflect.TypeOf(false)
	Bytes     = reflect.TypeOf([]byte(nil))
	ErrorType = reflect.TypeOf((*error)(nil)).Elem()
)

// TypeOf returns the plain hint for T. Interface types are checked by
// implementation, all others by assignability.
func TypeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Subscription is a sign subscripted by child hints, e.g. list[int].
type Subscription struct {
	sign Sign
	args []Hint
}

// Subscript builds a compliant hint from any sign, including signs created
// with DefineSign.
func Subscript(sign Sign, args ...Hint) *Subscription {
	return &Subscription{sign: sign, args: append([]Hint(nil), args...)}
}

func (s *Subscription) HintSign() Sign   { return s.sign }
func (s *Subscription) HintArgs() []Hint { return append([]Hint(nil), s.args...) }

func (s *Subscription) String() string {
	parts := make([]string, len(s.args))
	for i, a := range s.args {
		if s.sign == SignLiteral {
			parts[i] = repr.Value(a, 0)
			continue
		}
		parts[i] = HintString(a)
	}
	if s.sign == SignUnion && len(parts) > 1 {
		return strings.Join(parts, " | ")
	}
	return s.sign.String() + "[" + strings.Join(parts, ", ") + "]"
}

// ListOf is a homogeneous sequence (slice or array) of elem.
func ListOf(elem Hint) *Subscription { return Subscript(SignList, elem) }

// TupleOf is a fixed-arity sequence whose i-th item satisfies items[i].
func TupleOf(items ...Hint) *Subscription { return Subscript(SignTuple, items...) }

// MapOf is a map whose keys satisfy key and values satisfy value.
func MapOf(key, value Hint) *Subscription { return Subscript(SignMapping, key, value) }

// SetOf is a map used as a set: its keys satisfy member, values are ignored.
func SetOf(member Hint) *Subscription { return Subscript(SignSet, member) }

// Union is satisfied by values satisfying at least one of hints.
func Union(hints ...Hint) *Subscription { return Subscript(SignUnion, hints...) }

// Optional is shorthand for Union(h, None).
func Optional(h Hint) *Subscription { return Union(h, None) }

// Literal is satisfied by values equal to one of values.
func Literal(values ...any) *Subscription { return Subscript(SignLiteral, values...) }

// PointerTo is satisfied by non-nil pointers whose element satisfies elem.
func PointerTo(elem Hint) *Subscription { return Subscript(SignPointer, elem) }

// ProtocolHint is a structural hint: a value satisfies it when its method set
// contains every listed method.
type ProtocolHint struct {
	name    string
	methods []string
}

// Protocol declares a structural hint. A protocol without methods admits
// every value.
func Protocol(name string, methods ...string) *ProtocolHint {
	return &ProtocolHint{name: name, methods: append([]string(nil), methods...)}
}

func (p *ProtocolHint) Name() string   { return p.name }
func (p *ProtocolHint) HintSign() Sign { return SignProtocol }
func (p *ProtocolHint) HintArgs() []Hint {
	out := make([]Hint, len(p.methods))
	for i, m := range p.methods {
		out[i] = m
	}
	return out
}
func (p *ProtocolHint) String() string { return p.name }

// AnnotatedHint attaches metadata to an origin hint. Metadata is carried for
// callers (validators, documentation) and ignored by checking and diagnosis.
type AnnotatedHint struct {
	origin   Hint
	metadata []any
}

// Annotated wraps origin with metadata. Nested wrappers are flattened.
func Annotated(origin Hint, metadata ...any) *AnnotatedHint {
	if inner, ok := origin.(*AnnotatedHint); ok {
		return &AnnotatedHint{origin: inner.origin, metadata: append(append([]any(nil), inner.metadata...), metadata...)}
	}
	return &AnnotatedHint{origin: origin, metadata: append([]any(nil), metadata...)}
}

func (a *AnnotatedHint) Origin() Hint    { return a.origin }
func (a *AnnotatedHint) Metadata() []any { return append([]any(nil), a.metadata...) }

func (a *AnnotatedHint) String() string {
	parts := []string{HintString(a.origin)}
	for _, m := range a.metadata {
		parts = append(parts, repr.Value(m, 0))
	}
	return "annotated[" + strings.Join(parts, ", ") + "]"
}

// stripAnnotated reduces h to its innermost origin.
func stripAnnotated(h Hint) Hint {
	for {
		a, ok := h.(*AnnotatedHint)
		if !ok {
			return h
		}
		h = a.origin
	}
}

// HintString renders a hint the way it appears in causes and errors.
func HintString(h Hint) string {
	switch t := h.(type) {
	case nil:
		return "none"
	case reflect.Type:
		if t == Any {
			return "any"
		}
		return t.String()
	case fmt.Stringer:
		return t.String()
	case Hinter:
		return HintString(Subscript(t.HintSign(), t.HintArgs()...))
	default:
		return repr.Value(h, 0)
	}
}
