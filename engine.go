package gohint

import (
	"log/slog"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// builtinCategories is filled by register calls in the handler files' init
// functions and copied into every Engine.
var builtinCategories = map[Sign]Category{}

func register(sign Sign, c Category) {
	if _, dup := builtinCategories[sign]; dup {
		panic("gohint: duplicate category for sign " + sign.String())
	}
	builtinCategories[sign] = c
}

// Engine owns a frozen sign→category table, a classification cache and the
// rendering options shared by every sleuth it creates. An Engine is safe for
// concurrent use.
type Engine struct {
	opts       Options
	categories map[Sign]Category
	cache      *lru.Cache[Hint, classification]
	log        *slog.Logger
}

type classification struct {
	sign     Sign
	children []Hint
	ok       bool
}

// NewEngine builds an Engine from the built-in categories plus
// opts.Categories.
func NewEngine(opts Options) *Engine {
	opts = opts.withDefaults()
	cats := make(map[Sign]Category, len(builtinCategories)+len(opts.Categories))
	for s, c := range builtinCategories {
		cats[s] = c
	}
	for s, c := range opts.Categories {
		cats[s] = c
	}
	e := &Engine{opts: opts, categories: cats, log: opts.Logger}
	if opts.CacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		e.cache, _ = lru.New[Hint, classification](opts.CacheSize)
	}
	return e
}

var defaultEngine = sync.OnceValue(func() *Engine { return NewEngine(Options{}) })

// Default returns the process-wide Engine built with zero Options.
func Default() *Engine { return defaultEngine() }

// Options returns the effective options of e.
func (e *Engine) Options() Options { return e.opts }

func (e *Engine) category(s Sign) (Category, bool) {
	c, ok := e.categories[s]
	return c, ok
}

// Classify returns the sign and children of h, or ok=false when h is a plain
// hint. h must already be stripped of annotations.
func Classify(h Hint) (sign Sign, children []Hint, ok bool) {
	return Default().Classify(h)
}

// Classify is the cached form of the package-level Classify.
func (e *Engine) Classify(h Hint) (Sign, []Hint, bool) {
	if e.cache == nil || !isComparable(h) {
		c := classify(h)
		return c.sign, c.children, c.ok
	}
	c, hit := e.cache.Get(h)
	if !hit {
		c = classify(h)
		e.cache.Add(h, c)
	}
	return c.sign, append([]Hint(nil), c.children...), c.ok
}

func classify(h Hint) classification {
	switch t := h.(type) {
	case Sign:
		return classification{sign: t, ok: true}
	case Hinter:
		sign := t.HintSign()
		args := t.HintArgs()
		if sign == SignUnion {
			args = flattenUnion(args, nil)
		}
		return classification{sign: sign, children: args, ok: true}
	}
	return classification{}
}

// flattenUnion inlines nested unions and drops repeated comparable members,
// keeping first occurrences in order.
func flattenUnion(args []Hint, seen map[Hint]struct{}) []Hint {
	if seen == nil {
		seen = map[Hint]struct{}{}
	}
	out := make([]Hint, 0, len(args))
	for _, a := range args {
		if u, ok := a.(Hinter); ok && u.HintSign() == SignUnion {
			out = append(out, flattenUnion(u.HintArgs(), seen)...)
			continue
		}
		if isComparable(a) {
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

func isComparable(h Hint) bool {
	if h == nil {
		return true
	}
	return reflect.ValueOf(h).Comparable()
}
