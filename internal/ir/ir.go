package ir

// Package ir defines the intermediate representation of textual hint
// expressions shared by the parser and the lowering into gohint hints. This
// package is internal and not part of the public API.

import (
	"strconv"
	"strings"
)

// NodeKind identifies an IR node type.
type NodeKind int

const (
	NodeName NodeKind = iota
	NodeSubscript
	NodeUnion
	NodeLiteral
)

// Node is the root IR node interface.
type Node interface {
	Kind() NodeKind
	// Pos is the byte offset of the node in the source expression.
	Pos() int
}

// Name is a bare identifier: a primitive ("int"), a sign used without
// arguments ("list") or a reference to a catalog entry.
type Name struct {
	Ident  string
	Offset int
}

func (n *Name) Kind() NodeKind { return NodeName }
func (n *Name) Pos() int       { return n.Offset }

// Subscript is a sign applied to arguments, e.g. dict[str, int].
type Subscript struct {
	Sign   string
	Args   []Node
	Offset int
}

func (s *Subscript) Kind() NodeKind { return NodeSubscript }
func (s *Subscript) Pos() int       { return s.Offset }

// Union is the infix form a | b | c.
type Union struct {
	Members []Node
	Offset  int
}

func (u *Union) Kind() NodeKind { return NodeUnion }
func (u *Union) Pos() int       { return u.Offset }

// Literal is a scalar constant: string, int, float64, bool or nil.
type Literal struct {
	Value  any
	Offset int
}

func (l *Literal) Kind() NodeKind { return NodeLiteral }
func (l *Literal) Pos() int       { return l.Offset }

// Format renders n in canonical form: single spaces after commas and
// around "|", double-quoted strings.
func Format(n Node) string {
	b := &strings.Builder{}
	format(b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Name:
		b.WriteString(t.Ident)
	case *Subscript:
		b.WriteString(t.Sign)
		b.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, a)
		}
		b.WriteByte(']')
	case *Union:
		for i, m := range t.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			format(b, m)
		}
	case *Literal:
		switch v := t.Value.(type) {
		case nil:
			b.WriteString("none")
		case string:
			b.WriteString(strconv.Quote(v))
		case int:
			b.WriteString(strconv.Itoa(v))
		case float64:
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case bool:
			b.WriteString(strconv.FormatBool(v))
		}
	}
}

// Walk calls fn for n and every descendant in depth-first order, stopping
// early when fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	switch t := n.(type) {
	case *Subscript:
		for _, a := range t.Args {
			if !Walk(a, fn) {
				return false
			}
		}
	case *Union:
		for _, m := range t.Members {
			if !Walk(m, fn) {
				return false
			}
		}
	}
	return true
}
