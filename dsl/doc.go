// Package dsl parses textual hint expressions into gohint hints and loads
// named hints from catalog files.
//
// Overview
//   - Expressions: `int`, `list[str]`, `dict[str, int | none]`,
//     `tuple[int, str]`, `optional[float]`, `literal["a", 1, true]`,
//     `ptr[int]`, `protocol[Closer, "Close"]`, `annotated[int, "gt=0"]`.
//   - Bare signs are hints too: `list` accepts any slice or array.
//   - Catalogs: YAML, TOML or JSON documents mapping names to expressions.
//     Entries may reference each other; cycles are rejected.
//
// Entry points
//   - Parse(expr)/MustParse(expr): built-in names only.
//   - Env.Parse(expr): adds user names and user signs (gohint.DefineSign).
//   - Format(expr): canonical spelling of an expression.
//   - LoadCatalog(path, opt)/ParseCatalog(data, format, opt): named hints,
//     optionally gated by a semver constraint on the catalog version.
//
// File layout (roles)
//   - parse.go: lexer and recursive-descent parser producing internal/ir.
//   - lower.go: IR to gohint.Hint, built-in name tables.
//   - catalog.go: catalog documents, reference resolution, versions.
//   - errors.go: *Error with offset and sentinel kinds.
//
// Example
//
//	h := dsl.MustParse("list[int | str]")
//	cause, _ := gohint.Diagnose([]any{1, 2.5}, h, "ids")
//	// []interface {} index 1 item float64 2.5 not int or string
//
//	cat, err := dsl.LoadCatalog("hints.yaml", dsl.CatalogOptions{Constraint: "^1"})
//	user, _ := cat.Lookup("user")
package dsl
