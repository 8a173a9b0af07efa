package gohint

import "log/slog"

// Is reports whether pith satisfies hint on the default Engine.
func Is(pith any, hint Hint) bool { return Default().Is(pith, hint) }

// Is is the fast-path check. It never builds explanations; call Diagnose or
// Check to learn why a value fails.
//
// Hints the engine cannot diagnose (unknown signs, subscripted signs without
// children, bare signs without origin kinds) never pass.
func (e *Engine) Is(pith any, hint Hint) bool {
	hint = stripAnnotated(hint)
	if IsIgnorable(hint) {
		return true
	}
	sign, children, ok := e.Classify(hint)
	if !ok {
		return matchesPlain(pith, hint)
	}
	if bare, isSign := hint.(Sign); isSign && bare == sign {
		return hasOriginKind(pith, sign)
	}
	cat, found := e.category(sign)
	if !found || cat.Check == nil || len(children) == 0 {
		return false
	}
	return cat.Check(e, pith, children)
}

// Check validates pith against hint on the default Engine.
func Check(pith any, hint Hint, label string) error { return Default().Check(pith, hint, label) }

// Check returns nil when pith satisfies hint and a *ViolationError otherwise.
// The violation is returned even when its cause cannot be diagnosed; in that
// case it wraps the DiagnosisError.
func (e *Engine) Check(pith any, hint Hint, label string) error {
	if e.Is(pith, hint) {
		return nil
	}
	ve := &ViolationError{
		Label: label,
		Hint:  HintString(hint),
		Pith:  e.NewSleuth(pith, hint, "", label).describe(),
	}
	cause, err := e.Diagnose(pith, hint, label)
	switch {
	case err != nil:
		ve.Err = err
	case cause == "":
		ve.Err = &DiagnosisError{Kind: ErrNoCause, Label: label, Hint: ve.Hint}
	default:
		ve.Cause = cause
	}
	if ve.Err != nil {
		e.log.Debug("violation without cause",
			slog.String("label", label),
			slog.String("hint", ve.Hint),
			slog.Any("error", ve.Err),
		)
	}
	return ve
}
