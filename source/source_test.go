package source_test

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"

	gohint "github.com/reoring/gohint"
	"github.com/reoring/gohint/source"
)

var wantDoc = map[string]any{
	"name":  "svc",
	"ports": []any{80, 443},
	"ratio": 0.5,
	"tags":  map[string]any{"tier": "web"},
}

func TestDecode_FormatsAgreeAfterNormalization(t *testing.T) {
	packed, err := msgpack.Marshal(map[string]any{
		"name":  "svc",
		"ports": []any{int8(80), uint16(443)},
		"ratio": 0.5,
		"tags":  map[string]any{"tier": "web"},
	})
	if err != nil {
		t.Fatalf("msgpack marshal: %v", err)
	}
	docs := map[string][]byte{
		source.FormatJSON:    []byte(`{"name": "svc", "ports": [80, 443], "ratio": 0.5, "tags": {"tier": "web"}}`),
		source.FormatYAML:    []byte("name: svc\nports: [80, 443]\nratio: 0.5\ntags:\n  tier: web\n"),
		source.FormatTOML:    []byte("name = \"svc\"\nports = [80, 443]\nratio = 0.5\n[tags]\ntier = \"web\"\n"),
		source.FormatMsgpack: packed,
	}
	for format, data := range docs {
		got, err := source.DecodeBytes(data, format, source.Options{})
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !reflect.DeepEqual(got, wantDoc) {
			t.Fatalf("%s: got %#v", format, got)
		}
	}
}

func TestDecode_NumberModes(t *testing.T) {
	data := []byte(`[1, 2.5, 12345678901234567890]`)
	got, _ := source.DecodeBytes(data, source.FormatJSON, source.Options{})
	if !reflect.DeepEqual(got, []any{1, 2.5, 1.2345678901234567e19}) {
		t.Fatalf("normalize: %#v", got)
	}
	got, _ = source.DecodeBytes(data, source.FormatJSON, source.Options{NumberMode: source.NumberJSONNumber})
	if !reflect.DeepEqual(got, []any{json.Number("1"), json.Number("2.5"), json.Number("12345678901234567890")}) {
		t.Fatalf("json number: %#v", got)
	}
	got, _ = source.DecodeBytes(data, source.FormatJSON, source.Options{NumberMode: source.NumberFloat64})
	if !reflect.DeepEqual(got, []any{1.0, 2.5, 1.2345678901234567e19}) {
		t.Fatalf("float64: %#v", got)
	}
}

func TestNormalize(t *testing.T) {
	in := map[any]any{"a": int64(3), "b": []any{uint8(1), float32(0.5)}}
	want := map[string]any{"a": 3, "b": []any{1, 0.5}}
	if got := source.Normalize(in, source.NumberNormalize); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
	if got := source.Normalize(uint64(math.MaxUint64), source.NumberNormalize); got != any(uint64(math.MaxUint64)) {
		t.Fatalf("overflowing uint should be kept, got %#v", got)
	}
	mixed := source.Normalize(map[any]any{1: "x", "k": int32(2)}, source.NumberNormalize)
	if !reflect.DeepEqual(mixed, map[any]any{1: "x", "k": 2}) {
		t.Fatalf("mixed keys: %#v", mixed)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := source.DecodeBytes([]byte(`{} {}`), source.FormatJSON, source.Options{}); err == nil {
		t.Fatalf("expected trailing data error")
	}
	if _, err := source.DecodeBytes([]byte(`x`), "ini", source.Options{}); !errors.Is(err, source.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := source.DecodeFile("doc.ini", source.Options{}); !errors.Is(err, source.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := source.DecodeBytes([]byte("a = "), source.FormatTOML, source.Options{}); err == nil {
		t.Fatalf("expected toml syntax error")
	}
}

func TestDecodeFile_DiagnosesAgainstHint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svc.yml")
	if err := os.WriteFile(path, []byte("ports: [80, \"443\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := source.DecodeFile(path, source.Options{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	h := gohint.MapOf(gohint.String, gohint.ListOf(gohint.Int))
	cause, err := gohint.Diagnose(v, h, "svc.yml")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := `map[string]interface {} value at key "ports" []interface {} index 1 item string "443" not int`
	if cause != want {
		t.Fatalf("cause = %q, want %q", cause, want)
	}
}

type linesDecoder struct{}

func (linesDecoder) Name() string { return "lines" }
func (linesDecoder) Decode(r io.Reader, _ source.Options) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	out := []any{}
	for _, l := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		out = append(out, l)
	}
	return out, nil
}

func TestRegister_CustomFormat(t *testing.T) {
	source.Register("lines", linesDecoder{}, ".lines")
	if f, err := source.FormatForPath("x.LINES"); err != nil || f != "lines" {
		t.Fatalf("FormatForPath = %q, %v", f, err)
	}
	v, err := source.DecodeBytes([]byte("a\nb\n"), "lines", source.Options{})
	if err != nil || !reflect.DeepEqual(v, []any{"a", "b"}) {
		t.Fatalf("decode = %#v, %v", v, err)
	}
	found := false
	for _, f := range source.Formats() {
		found = found || f == "lines"
	}
	if !found {
		t.Fatalf("lines not listed in %v", source.Formats())
	}
}

func TestDecode_RejectDuplicateKeys(t *testing.T) {
	doc := []byte(`{"a": 1, "list": [{"x": 1}, {"y": 2, "y": 3}]}`)
	v, err := source.DecodeBytes(doc, source.FormatJSON, source.Options{})
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if got := v.(map[string]any)["list"].([]any)[1].(map[string]any)["y"]; got != 3 {
		t.Fatalf("expected last duplicate to win, got %v", got)
	}

	_, err = source.DecodeBytes(doc, source.FormatJSON, source.Options{RejectDuplicateKeys: true})
	if !errors.Is(err, source.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if !strings.Contains(err.Error(), `"y" at /list/1/y`) {
		t.Fatalf("unexpected message: %v", err)
	}

	escaped := []byte(`{"a/b": {"k~": 1, "k~": 2}}`)
	_, err = source.DecodeBytes(escaped, source.FormatJSON, source.Options{RejectDuplicateKeys: true})
	if err == nil || !strings.Contains(err.Error(), "at /a~1b/k~0") {
		t.Fatalf("expected escaped pointer, got %v", err)
	}

	if _, err := source.DecodeBytes([]byte(`{"a": 1, "b": {"a": 2}}`), source.FormatJSON, source.Options{RejectDuplicateKeys: true}); err != nil {
		t.Fatalf("same name in different objects is not a duplicate: %v", err)
	}
}
