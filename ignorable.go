package gohint

import "reflect"

// IsIgnorable reports whether every value satisfies h, in which case h can
// never be the cause of a failure.
func IsIgnorable(h Hint) bool {
	switch t := stripAnnotated(h).(type) {
	case reflect.Type:
		// interface{} and every other method-less interface.
		return t.Kind() == reflect.Interface && t.NumMethod() == 0
	case Hinter:
		switch t.HintSign() {
		case SignProtocol:
			return len(t.HintArgs()) == 0
		case SignUnion:
			for _, a := range t.HintArgs() {
				if IsIgnorable(a) {
					return true
				}
			}
		}
	}
	return false
}
