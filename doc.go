// Package gohint provides:
//
// - Runtime type hints for Go values (plain reflect types, literals, and
// parameterized hints such as list, tuple, dict, set, union, literal, ptr and
// protocol)
// - A fast-path checker (Is/Check) and a function decorator (Decorate)
// - A cause engine that explains, on failure, which part of the value and
// which part of the hint disagree
//
// Design policy:
// - Keep public APIs in the root package; rendering helpers live under
// internal/.
// - Place the textual hint DSL under dsl/, document loaders under source/,
// JSON Schema export under jsonschema/ and the CLI under cmd/gohint.
// - Diagnosis is a separate, slower pass that only runs after the fast path
// rejected a value.
//
// Typical usage:
//
//	h := gohint.ListOf(gohint.Union(gohint.Int, gohint.String))
//	if err := gohint.Check(v, h, "parameter ids"); err != nil {
//	    // parameter ids violates hint list[int | string], as
//	    // []interface {} index 2 item float64 3.5 not int or string
//	}
//
//	cause, err := gohint.Diagnose(v, h, "parameter ids")
//
//	add, _ := gohint.Decorate(func(a, b int) int { return a + b },
//	    gohint.Signature{Params: []gohint.Hint{gohint.Int, gohint.Int}})
package gohint
