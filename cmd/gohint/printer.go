package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printer writes check reports. Colors are fixed per printer; the global
// color.NoColor is left alone.
type printer struct {
	w    io.Writer
	ok   func(a ...any) string
	fail func(a ...any) string
	warn func(a ...any) string
	dim  func(a ...any) string
}

func newPrinter(w io.Writer, enabled bool) *printer {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &printer{
		w:    w,
		ok:   mk(color.FgGreen, color.Bold),
		fail: mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow),
		dim:  mk(color.Faint),
	}
}

func (p *printer) result(r checkResult) {
	switch {
	case r.err != nil:
		fmt.Fprintf(p.w, "%s %s: %v\n", p.warn("error"), r.path, r.err)
	case r.violation != nil:
		fmt.Fprintf(p.w, "%s %s\n", p.fail("FAIL"), r.violation.Error())
	default:
		fmt.Fprintf(p.w, "%s %s\n", p.ok("ok"), r.path)
	}
}

func (p *printer) summary(total, failed int) {
	fmt.Fprintln(p.w, p.dim(fmt.Sprintf("%d checked, %d failed", total, failed)))
}
