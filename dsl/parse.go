package dsl

import (
	"strconv"
	"strings"

	"github.com/reoring/gohint/internal/ir"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLBrack
	tokRBrack
	tokComma
	tokPipe
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokIdent:
		return "name"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLBrack:
		return `"["`
	case tokRBrack:
		return `"]"`
	case tokComma:
		return `","`
	case tokPipe:
		return `"|"`
	}
	return "token"
}

// lexer splits a hint expression into tokens. Whitespace is insignificant.
type lexer struct {
	src string
	off int
}

func (lx *lexer) next() (token, error) {
	for lx.off < len(lx.src) && isSpace(lx.src[lx.off]) {
		lx.off++
	}
	start := lx.off
	if lx.off >= len(lx.src) {
		return token{kind: tokEOF, pos: start}, nil
	}
	c := lx.src[lx.off]
	switch {
	case c == '[':
		lx.off++
		return token{kind: tokLBrack, text: "[", pos: start}, nil
	case c == ']':
		lx.off++
		return token{kind: tokRBrack, text: "]", pos: start}, nil
	case c == ',':
		lx.off++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case c == '|':
		lx.off++
		return token{kind: tokPipe, text: "|", pos: start}, nil
	case c == '"':
		return lx.scanString()
	case c == '-' || isDigit(c):
		return lx.scanNumber()
	case isIdentStart(c):
		lx.off++
		for lx.off < len(lx.src) && isIdentContinue(lx.src[lx.off]) {
			lx.off++
		}
		return token{kind: tokIdent, text: lx.src[start:lx.off], pos: start}, nil
	}
	return token{}, lx.errorf(start, "unexpected character %q", c)
}

func (lx *lexer) scanString() (token, error) {
	start := lx.off
	lx.off++
	for lx.off < len(lx.src) {
		switch lx.src[lx.off] {
		case '\\':
			lx.off += 2
			continue
		case '"':
			lx.off++
			raw := lx.src[start:lx.off]
			s, err := strconv.Unquote(raw)
			if err != nil {
				return token{}, lx.errorf(start, "bad string literal %s", raw)
			}
			return token{kind: tokString, text: s, pos: start}, nil
		}
		lx.off++
	}
	return token{}, lx.errorf(start, "unterminated string")
}

func (lx *lexer) scanNumber() (token, error) {
	start := lx.off
	if lx.src[lx.off] == '-' {
		lx.off++
	}
	digits := lx.off
	for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || strings.IndexByte(".eE+-_", lx.src[lx.off]) >= 0) {
		if c := lx.src[lx.off]; (c == '+' || c == '-') && !strings.ContainsAny(lx.src[lx.off-1:lx.off], "eE") {
			break
		}
		lx.off++
	}
	if lx.off == digits {
		return token{}, lx.errorf(start, "expected digits after '-'")
	}
	return token{kind: tokNumber, text: lx.src[start:lx.off], pos: start}, nil
}

func (lx *lexer) errorf(pos int, format string, args ...any) error {
	return newError(ErrSyntax, lx.src, pos, format, args...)
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentContinue(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '.' }

// parser is a recursive-descent parser over the grammar
//
//	expr := term { "|" term }
//	term := NAME [ "[" expr { "," expr } [","] "]" ] | STRING | NUMBER
type parser struct {
	lx  lexer
	tok token
}

// parseExpr parses src into its IR form.
func parseExpr(src string) (ir.Node, error) {
	p := &parser{lx: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokEOF {
		return p.lx.errorf(p.tok.pos, "unexpected %s", p.tok.kind)
	}
	return p.lx.errorf(p.tok.pos, "unexpected %s %q", p.tok.kind, p.tok.text)
}

func (p *parser) expr() (ir.Node, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokPipe {
		return first, nil
	}
	u := &ir.Union{Members: []ir.Node{first}, Offset: first.Pos()}
	for p.tok.kind == tokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		m, err := p.term()
		if err != nil {
			return nil, err
		}
		u.Members = append(u.Members, m)
	}
	return u, nil
}

func (p *parser) term() (ir.Node, error) {
	t := p.tok
	switch t.kind {
	case tokString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Value: t.text, Offset: t.pos}, nil
	case tokNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := parseNumber(t.text)
		if err != nil {
			return nil, p.lx.errorf(t.pos, "bad number %q", t.text)
		}
		return &ir.Literal{Value: v, Offset: t.pos}, nil
	case tokIdent:
	default:
		return nil, p.unexpected()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch t.text {
	case "true", "false":
		return &ir.Literal{Value: t.text == "true", Offset: t.pos}, nil
	}
	if p.tok.kind != tokLBrack {
		return &ir.Name{Ident: t.text, Offset: t.pos}, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	sub := &ir.Subscript{Sign: t.text, Offset: t.pos}
	for p.tok.kind != tokRBrack {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		sub.Args = append(sub.Args, arg)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind != tokRBrack {
		return nil, p.unexpected()
	}
	if len(sub.Args) == 0 {
		return nil, p.lx.errorf(p.tok.pos, "%s[] needs at least one argument", t.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return sub, nil
}

func parseNumber(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 0, strconv.IntSize); err == nil {
		return int(i), nil
	}
	return strconv.ParseFloat(s, 64)
}
