package gohint

import "log/slog"

// UnionPolicy controls how a union whose every branch failed is explained.
type UnionPolicy int

const (
	// UnionLast reports the cause of the last branch tried, or a single line
	// naming every branch when all branches are plain types.
	UnionLast UnionPolicy = iota
	// UnionAll reports one indented line per branch.
	UnionAll
)

// ParseUnionPolicy maps "last"/"all" to a UnionPolicy.
func ParseUnionPolicy(s string) (UnionPolicy, bool) {
	switch s {
	case "", "last":
		return UnionLast, true
	case "all":
		return UnionAll, true
	}
	return UnionLast, false
}

func (p UnionPolicy) String() string {
	if p == UnionAll {
		return "all"
	}
	return "last"
}

// Handler explains why the sleuth's pith fails its hint, returning "" when it
// does not.
type Handler func(s *CauseSleuth) (string, error)

// Checker is the fast-path predicate for one sign. children are the
// classified children of the hint.
type Checker func(e *Engine, pith any, children []Hint) bool

// Category pairs the fast-path checker and cause handler for one sign.
type Category struct {
	Check Checker
	Cause Handler
}

// Options configures an Engine.
type Options struct {
	IndentUnit   string       // Indentation added per nested block. Default: two spaces.
	MaxReprWidth int          // Display width cap for rendered values; 0 disables.
	CacheSize    int          // Classification cache entries. Default: 1024; <0 disables.
	UnionPolicy  UnionPolicy  // Default: UnionLast.
	Logger       *slog.Logger // Default: slog.Default() with component=gohint.
	// Categories adds or overrides sign categories on top of the built-in
	// ones. The resulting table is frozen when the Engine is built.
	Categories map[Sign]Category
}

const (
	defaultIndentUnit = "  "
	defaultCacheSize  = 1024
)

func (o Options) withDefaults() Options {
	if o.IndentUnit == "" {
		o.IndentUnit = defaultIndentUnit
	}
	if o.CacheSize == 0 {
		o.CacheSize = defaultCacheSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default().With(slog.String("component", "gohint"))
	}
	return o
}
