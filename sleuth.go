package gohint

import (
	"log/slog"
	"sort"

	"github.com/reoring/gohint/i18n"
	"github.com/reoring/gohint/internal/repr"
)

// Field names accepted by CauseSleuth.Derive.
const (
	FieldPith   = "pith"
	FieldHint   = "hint"
	FieldIndent = "indent"
	FieldLabel  = "label"
)

// Fields maps sleuth field names to override values for Derive.
type Fields map[string]any

// CauseSleuth explains why one pith fails one hint. It is immutable: nested
// piths and hints are diagnosed by sleuths obtained from Derive.
type CauseSleuth struct {
	engine   *Engine
	pith     any
	hint     Hint
	sign     Sign
	hasSign  bool
	children []Hint
	indent   string
	label    string
}

// NewSleuth creates a sleuth on the default Engine.
func NewSleuth(pith any, hint Hint, indent, label string) *CauseSleuth {
	return Default().NewSleuth(pith, hint, indent, label)
}

// NewSleuth strips annotations from hint and classifies it. Diagnosis is
// deferred to Cause.
func (e *Engine) NewSleuth(pith any, hint Hint, indent, label string) *CauseSleuth {
	hint = stripAnnotated(hint)
	sign, children, ok := e.Classify(hint)
	return &CauseSleuth{
		engine:   e,
		pith:     pith,
		hint:     hint,
		sign:     sign,
		hasSign:  ok,
		children: children,
		indent:   indent,
		label:    label,
	}
}

func (s *CauseSleuth) Pith() any       { return s.pith }
func (s *CauseSleuth) Hint() Hint      { return s.hint }
func (s *CauseSleuth) Indent() string  { return s.indent }
func (s *CauseSleuth) Label() string   { return s.label }
func (s *CauseSleuth) Engine() *Engine { return s.engine }

// Sign returns the hint's sign; ok is false for plain hints.
func (s *CauseSleuth) Sign() (sign Sign, ok bool) { return s.sign, s.hasSign }

// Children returns a copy of the hint's children.
func (s *CauseSleuth) Children() []Hint { return append([]Hint(nil), s.children...) }

// Cause returns a human-readable explanation of why the pith violates the
// hint, or "" when it does not.
func (s *CauseSleuth) Cause() (string, error) {
	if IsIgnorable(s.hint) {
		return "", nil
	}
	if !s.hasSign {
		return causeType(s)
	}
	if bare, ok := s.hint.(Sign); ok && bare == s.sign {
		return causeOrigin(s)
	}
	cat, ok := s.engine.category(s.sign)
	if !ok || cat.Cause == nil {
		return "", s.fail(ErrUnsupportedHint)
	}
	if len(s.children) == 0 {
		return "", s.fail(ErrMalformedHint)
	}
	return cat.Cause(s)
}

// Derive returns a new sleuth whose fields are copied from s except those in
// overrides. The hint is stripped and classified again.
func (s *CauseSleuth) Derive(overrides Fields) (*CauseSleuth, error) {
	pith, hint, indent, label := s.pith, s.hint, s.indent, s.label
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := overrides[k]
		switch k {
		case FieldPith:
			pith = v
		case FieldHint:
			hint = v
		case FieldIndent, FieldLabel:
			str, ok := v.(string)
			if !ok {
				return nil, &DiagnosisError{Kind: ErrInvalidField, Label: s.label, Field: k}
			}
			if k == FieldIndent {
				indent = str
			} else {
				label = str
			}
		default:
			return nil, &DiagnosisError{Kind: ErrUnrecognizedField, Label: s.label, Field: k}
		}
	}
	return s.engine.NewSleuth(pith, hint, indent, label), nil
}

// WithPith is Derive(Fields{FieldPith: pith}).
func (s *CauseSleuth) WithPith(pith any) *CauseSleuth {
	d, _ := s.Derive(Fields{FieldPith: pith})
	return d
}

// WithHint is Derive(Fields{FieldHint: hint}).
func (s *CauseSleuth) WithHint(hint Hint) *CauseSleuth {
	d, _ := s.Derive(Fields{FieldHint: hint})
	return d
}

// WithIndent is Derive(Fields{FieldIndent: indent}).
func (s *CauseSleuth) WithIndent(indent string) *CauseSleuth {
	d, _ := s.Derive(Fields{FieldIndent: indent})
	return d
}

// subCause diagnoses pith against hint one level down.
func (s *CauseSleuth) subCause(pith any, hint Hint) (string, error) {
	sub, err := s.Derive(Fields{FieldPith: pith, FieldHint: hint})
	if err != nil {
		return "", err
	}
	return sub.Cause()
}

func (s *CauseSleuth) fail(kind error) error {
	err := &DiagnosisError{Kind: kind, Label: s.label, Hint: HintString(s.hint)}
	s.engine.log.Debug("diagnosis failed",
		slog.String("label", s.label),
		slog.String("hint", err.Hint),
		slog.String("kind", kind.Error()),
	)
	return err
}

func (s *CauseSleuth) repr(v any) string { return repr.Value(v, s.engine.opts.MaxReprWidth) }

// describe renders the pith as "<type> <value>", e.g. `string "x"`.
func (s *CauseSleuth) describe() string {
	if s.pith == nil {
		return "nil"
	}
	return repr.TypeName(s.pith) + " " + s.repr(s.pith)
}

func msg(code string, data map[string]string) string { return i18n.T(code, data) }

// Diagnose explains why pith violates hint on the default Engine.
func Diagnose(pith any, hint Hint, label string) (string, error) {
	return Default().Diagnose(pith, hint, label)
}

// Diagnose explains why pith violates hint, returning "" when it does not.
func (e *Engine) Diagnose(pith any, hint Hint, label string) (string, error) {
	return e.NewSleuth(pith, hint, "", label).Cause()
}
