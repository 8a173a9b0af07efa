package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"actual": `string "x"`, "expected": "int"}

	// default is en
	if msg := T(CodeTypeMismatch, data); msg != `string "x" not int` {
		t.Fatalf("unexpected english message: %q", msg)
	}

	SetLanguage("ja-JP")
	if msg := T(CodeTypeMismatch, data); !strings.Contains(msg, "ではありません") {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestMatch(t *testing.T) {
	cases := map[string]string{
		"en":      "en",
		"en-GB":   "en",
		"ja":      "ja",
		"ja-JP":   "ja",
		"fr":      "en",
		"!!bogus": "en",
	}
	for in, want := range cases {
		if got := Match(in); got != want {
			t.Errorf("Match(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return strings.ToUpper(code) }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T(CodeTupleLength, nil); msg != "TUPLE_LENGTH" {
		t.Fatalf("custom translator not used: %q", msg)
	}
}
