package gohint_test

import (
	"errors"
	"testing"

	gohint "github.com/reoring/gohint"
)

func TestDecorate_PassesValidCalls(t *testing.T) {
	add, err := gohint.Decorate(func(a, b int) int { return a + b }, gohint.Signature{
		Params:  []gohint.Hint{gohint.Int, gohint.Int},
		Results: []gohint.Hint{gohint.Int},
	})
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if got := add(1, 2); got != 3 {
		t.Fatalf("add(1, 2) = %d", got)
	}
}

func TestDecorate_ReturnsViolationThroughErrorResult(t *testing.T) {
	count, err := gohint.Decorate(func(ids []any) (int, error) { return len(ids), nil }, gohint.Signature{
		Params:     []gohint.Hint{gohint.ListOf(gohint.Int)},
		ParamNames: []string{"ids"},
	})
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	n, err := count([]any{1, "x"})
	if n != 0 {
		t.Fatalf("expected zero result on violation, got %d", n)
	}
	ve, ok := gohint.AsViolation(err)
	if !ok || ve.Label != "parameter ids" {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, err := count([]any{1, 2}); err != nil || n != 2 {
		t.Fatalf("count = (%d, %v)", n, err)
	}
}

func TestDecorate_ChecksResults(t *testing.T) {
	get, _ := gohint.Decorate(func() (any, error) { return "x", nil }, gohint.Signature{
		Results: []gohint.Hint{gohint.Int},
	})
	_, err := get()
	if ve, ok := gohint.AsViolation(err); !ok || ve.Label != "return value #0" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecorate_PanicsWithoutErrorResult(t *testing.T) {
	upper, _ := gohint.Decorate(func(s any) string { return "" }, gohint.Signature{
		Params: []gohint.Hint{gohint.String},
	})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with error, got %v", r)
		}
		if ve, ok := gohint.AsViolation(err); !ok || ve.Label != "parameter #0" {
			t.Fatalf("unexpected panic value: %v", err)
		}
	}()
	upper(3)
	t.Fatalf("expected panic")
}

func TestDecorate_Variadic(t *testing.T) {
	sum, _ := gohint.Decorate(func(xs ...any) (int, error) { return len(xs), nil }, gohint.Signature{
		Params: []gohint.Hint{gohint.ListOf(gohint.Int)},
	})
	if n, err := sum(1, 2, 3); err != nil || n != 3 {
		t.Fatalf("sum = (%d, %v)", n, err)
	}
	if _, err := sum(1, "a"); err == nil {
		t.Fatalf("expected violation")
	}
}

func TestDecorate_RejectsBadInput(t *testing.T) {
	if _, err := gohint.Decorate(3, gohint.Signature{}); err == nil {
		t.Fatalf("expected error for non-function")
	}
	_, err := gohint.Decorate(func() {}, gohint.Signature{Params: []gohint.Hint{gohint.Int}})
	if err == nil || errors.Is(err, gohint.ErrNoCause) {
		t.Fatalf("expected arity error, got %v", err)
	}
}
