package gohint

import (
	"fmt"
	"reflect"
)

// Signature declares the hints checked by a decorated function. A nil entry
// (or a missing trailing entry) leaves that parameter or result unchecked.
// For variadic functions the last parameter hint applies to the whole
// variadic slice.
type Signature struct {
	Params     []Hint
	ParamNames []string // Optional, used in violation labels.
	Results    []Hint
}

// Decorate wraps fn on the default Engine.
func Decorate[F any](fn F, sig Signature) (F, error) {
	return DecorateWith(Default(), fn, sig)
}

// DecorateWith returns a function of the same type as fn that checks its
// arguments before calling fn and its results afterwards.
//
// A violation is returned through fn's trailing error result when it has
// one (every other result is zero); otherwise the wrapper panics with the
// *ViolationError.
func DecorateWith[F any](e *Engine, fn F, sig Signature) (F, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fn, fmt.Errorf("gohint: decorate %T: not a function", fn)
	}
	ft := fv.Type()
	if len(sig.Params) > ft.NumIn() {
		return fn, fmt.Errorf("gohint: decorate %s: %d parameter hints for %d parameters", ft, len(sig.Params), ft.NumIn())
	}
	if len(sig.Results) > ft.NumOut() {
		return fn, fmt.Errorf("gohint: decorate %s: %d result hints for %d results", ft, len(sig.Results), ft.NumOut())
	}
	errResult := ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == ErrorType

	fail := func(err error) []reflect.Value {
		if !errResult {
			panic(err)
		}
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		ev := reflect.New(ErrorType).Elem()
		ev.Set(reflect.ValueOf(err))
		out[len(out)-1] = ev
		return out
	}

	wrapper := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		for i, h := range sig.Params {
			if h == nil {
				continue
			}
			if err := e.Check(args[i].Interface(), h, paramLabel(sig, i)); err != nil {
				return fail(err)
			}
		}
		var out []reflect.Value
		if ft.IsVariadic() {
			out = fv.CallSlice(args)
		} else {
			out = fv.Call(args)
		}
		for i, h := range sig.Results {
			if h == nil {
				continue
			}
			if err := e.Check(out[i].Interface(), h, resultLabel(ft, i)); err != nil {
				return fail(err)
			}
		}
		return out
	})
	return wrapper.Interface().(F), nil
}

func paramLabel(sig Signature, i int) string {
	if i < len(sig.ParamNames) && sig.ParamNames[i] != "" {
		return "parameter " + sig.ParamNames[i]
	}
	return fmt.Sprintf("parameter #%d", i)
}

func resultLabel(ft reflect.Type, i int) string {
	if ft.NumOut() == 1 {
		return "return value"
	}
	return fmt.Sprintf("return value #%d", i)
}
