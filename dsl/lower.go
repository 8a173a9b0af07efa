package dsl

import (
	"fmt"

	gohint "github.com/reoring/gohint"
	"github.com/reoring/gohint/internal/ir"
)

// primitives are the built-in plain hint names.
var primitives = map[string]gohint.Hint{
	"any":     gohint.Any,
	"none":    gohint.None,
	"int":     gohint.Int,
	"int64":   gohint.Int64,
	"float":   gohint.Float,
	"float64": gohint.Float,
	"str":     gohint.String,
	"string":  gohint.String,
	"bool":    gohint.Bool,
	"bytes":   gohint.Bytes,
	"error":   gohint.ErrorType,
}

// signs are the built-in sign names usable bare or subscripted.
var signs = map[string]gohint.Sign{
	"union":   gohint.SignUnion,
	"list":    gohint.SignList,
	"tuple":   gohint.SignTuple,
	"dict":    gohint.SignMapping,
	"map":     gohint.SignMapping,
	"set":     gohint.SignSet,
	"literal": gohint.SignLiteral,
	"ptr":     gohint.SignPointer,
}

// Env resolves the names of a hint expression beyond the built-ins. The
// zero Env knows only the built-ins.
type Env struct {
	// Names binds identifiers to hints, e.g. catalog entries.
	Names map[string]gohint.Hint
	// Signs binds identifiers to signs created with gohint.DefineSign.
	Signs map[string]gohint.Sign
}

// Parse parses a hint expression using only the built-in names.
func Parse(expr string) (gohint.Hint, error) {
	var env Env
	return env.Parse(expr)
}

// MustParse is like Parse but panics on error. Intended for package-level
// hint declarations.
func MustParse(expr string) gohint.Hint {
	h, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return h
}

// Parse parses expr and lowers it to a gohint.Hint.
func (env *Env) Parse(expr string) (gohint.Hint, error) {
	n, err := parseExpr(expr)
	if err != nil {
		return nil, err
	}
	l := lowerer{src: expr, resolve: env.lookup, signs: env.Signs}
	return l.lower(n)
}

func (env *Env) lookup(name string) (gohint.Hint, bool, error) {
	h, ok := env.Names[name]
	return h, ok, nil
}

// Format returns the canonical spelling of a hint expression.
func Format(expr string) (string, error) {
	n, err := parseExpr(expr)
	if err != nil {
		return "", err
	}
	return ir.Format(n), nil
}

// lowerer turns IR into hints. resolve is consulted for identifiers that are
// neither primitives nor signs.
type lowerer struct {
	src     string
	resolve func(name string) (gohint.Hint, bool, error)
	signs   map[string]gohint.Sign
}

func (l *lowerer) errorf(kind error, n ir.Node, format string, args ...any) error {
	return newError(kind, l.src, n.Pos(), format, args...)
}

func (l *lowerer) sign(name string) (gohint.Sign, bool) {
	if s, ok := signs[name]; ok {
		return s, true
	}
	s, ok := l.signs[name]
	return s, ok
}

func (l *lowerer) lower(n ir.Node) (gohint.Hint, error) {
	switch t := n.(type) {
	case *ir.Literal:
		return t.Value, nil
	case *ir.Name:
		if h, ok := primitives[t.Ident]; ok {
			return h, nil
		}
		if s, ok := l.sign(t.Ident); ok {
			return s, nil
		}
		if l.resolve != nil {
			h, ok, err := l.resolve(t.Ident)
			if err != nil {
				return nil, err
			}
			if ok {
				return h, nil
			}
		}
		return nil, l.errorf(ErrUnknownName, t, "%q", t.Ident)
	case *ir.Union:
		members, err := l.lowerAll(t.Members)
		if err != nil {
			return nil, err
		}
		return gohint.Union(members...), nil
	case *ir.Subscript:
		return l.subscript(t)
	}
	return nil, fmt.Errorf("dsl: unexpected node %T", n)
}

func (l *lowerer) lowerAll(nodes []ir.Node) ([]gohint.Hint, error) {
	out := make([]gohint.Hint, len(nodes))
	for i, n := range nodes {
		h, err := l.lower(n)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func (l *lowerer) subscript(s *ir.Subscript) (gohint.Hint, error) {
	arity := func(want int) error {
		if len(s.Args) != want {
			return l.errorf(ErrArity, s, "%s takes %d, got %d", s.Sign, want, len(s.Args))
		}
		return nil
	}
	switch s.Sign {
	case "optional":
		if err := arity(1); err != nil {
			return nil, err
		}
		h, err := l.lower(s.Args[0])
		if err != nil {
			return nil, err
		}
		return gohint.Optional(h), nil
	case "literal":
		values := make([]any, len(s.Args))
		for i, a := range s.Args {
			v, err := l.constant(a)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return gohint.Literal(values...), nil
	case "annotated":
		origin, err := l.lower(s.Args[0])
		if err != nil {
			return nil, err
		}
		meta := make([]any, 0, len(s.Args)-1)
		for _, a := range s.Args[1:] {
			v, err := l.constant(a)
			if err != nil {
				return nil, err
			}
			meta = append(meta, v)
		}
		return gohint.Annotated(origin, meta...), nil
	case "protocol":
		name, ok := s.Args[0].(*ir.Name)
		if !ok {
			return nil, l.errorf(ErrArgument, s.Args[0], "protocol name must be an identifier")
		}
		methods := make([]string, 0, len(s.Args)-1)
		for _, a := range s.Args[1:] {
			lit, ok := a.(*ir.Literal)
			m, isStr := "", false
			if ok {
				m, isStr = lit.Value.(string)
			}
			if !isStr {
				return nil, l.errorf(ErrArgument, a, "protocol methods must be strings")
			}
			methods = append(methods, m)
		}
		return gohint.Protocol(name.Ident, methods...), nil
	}

	sign, ok := l.sign(s.Sign)
	if !ok {
		return nil, l.errorf(ErrUnknownName, s, "sign %q", s.Sign)
	}
	switch sign {
	case gohint.SignList, gohint.SignSet, gohint.SignPointer:
		if err := arity(1); err != nil {
			return nil, err
		}
	case gohint.SignMapping:
		if err := arity(2); err != nil {
			return nil, err
		}
	case gohint.SignLiteral:
		// handled above by name; reached only through a user alias
		return nil, l.errorf(ErrArgument, s, "literal must be spelled literal[...]")
	}
	args, err := l.lowerAll(s.Args)
	if err != nil {
		return nil, err
	}
	return gohint.Subscript(sign, args...), nil
}

// constant accepts a literal node or the name none.
func (l *lowerer) constant(n ir.Node) (any, error) {
	switch t := n.(type) {
	case *ir.Literal:
		return t.Value, nil
	case *ir.Name:
		if t.Ident == "none" {
			return nil, nil
		}
	}
	return nil, l.errorf(ErrArgument, n, "expected a constant, got %s", ir.Format(n))
}

func newError(kind error, src string, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Expr: src, Offset: pos, Msg: fmt.Sprintf(format, args...)}
}
