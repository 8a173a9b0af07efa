package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_OkAndFail(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "a: [1, 2]\nb: []\n")
	bad := writeFile(t, dir, "bad.json", `{"a": [1, "x"]}`)

	out, _, err := runCLI(t, "", "check", "--color", "off", "--hint", "dict[str, list[int]]", good, bad)
	if !errors.Is(err, errViolations) {
		t.Fatalf("expected errViolations, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	if lines[0] != "ok "+good {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "FAIL "+bad+" violates hint dict[str, list[int]]") || !strings.Contains(lines[1], `"x"`) {
		t.Fatalf("unexpected failure line: %q", lines[1])
	}
	if lines[2] != "2 checked, 1 failed" {
		t.Fatalf("unexpected summary: %q", lines[2])
	}
}

func TestCheck_AllPass(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.toml", "name = \"x\"\nport = 8080\n")
	out, _, err := runCLI(t, "", "check", "--color", "off", "--hint", "dict[str, str | int]", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 checked, 0 failed") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheck_Stdin(t *testing.T) {
	out, _, err := runCLI(t, "[1, 2, 3]", "check", "--color", "off", "--format", "json", "--hint", "list[int]", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "ok -") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, _, err = runCLI(t, "[1]", "check", "--color", "off", "--hint", "list[int]", "-")
	if !errors.Is(err, errViolations) {
		t.Fatalf("expected errViolations without --format, got %v", err)
	}
	if !strings.Contains(out, "--format is required") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheck_DecodeErrorCountsAsFailure(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.json", `{"a":`)
	out, _, err := runCLI(t, "", "check", "--color", "off", "--hint", "any", broken)
	if !errors.Is(err, errViolations) {
		t.Fatalf("expected errViolations, got %v", err)
	}
	if !strings.HasPrefix(out, "error "+broken+":") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheck_FlagErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `1`)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no hint", []string{"check", doc}, "one of --hint or --name"},
		{"both", []string{"check", "--hint", "int", "--name", "x", doc}, "mutually exclusive"},
		{"name without catalog", []string{"check", "--name", "x", doc}, "--name requires --catalog"},
		{"bad hint", []string{"check", "--hint", "list[", doc}, "syntax"},
		{"bad numbers", []string{"check", "--hint", "int", "--numbers", "decimal", doc}, "invalid --numbers"},
		{"bad color", []string{"check", "--color", "sometimes", "--hint", "int", doc}, "invalid color mode"},
		{"bad policy", []string{"check", "--union-policy", "first", "--hint", "int", doc}, "invalid union policy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCheck_CatalogEntry(t *testing.T) {
	dir := t.TempDir()
	cat := writeFile(t, dir, "hints.yaml", `version: 1.2.0
hints:
  port: int
  ports: list[port]
`)
	doc := writeFile(t, dir, "doc.json", `[80, 443]`)
	out, _, err := runCLI(t, "", "check", "--color", "off", "--catalog", cat, "--name", "ports", "--catalog-version", "^1", doc)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	_, _, err = runCLI(t, "", "check", "--color", "off", "--catalog", cat, "--name", "missing", doc)
	if err == nil || !strings.Contains(err.Error(), `no entry "missing"`) {
		t.Fatalf("expected missing entry error, got %v", err)
	}

	_, _, err = runCLI(t, "", "check", "--color", "off", "--catalog", cat, "--name", "ports", "--catalog-version", ">=2", doc)
	if err == nil {
		t.Fatal("expected version constraint failure")
	}
}

func TestConfig_LoadAndReject(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gohint.toml", `
[engine]
union_policy = "all"
max_width = 40

[output]
color = "off"
`)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.UnionPolicy != "all" || cfg.Engine.MaxWidth != 40 || cfg.Output.Color != "off" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	found, ok, err := findConfig(sub)
	if err != nil || !ok || found != cfgPath {
		t.Fatalf("findConfig = %q, %v, %v", found, ok, err)
	}

	typo := writeFile(t, dir, "typo.toml", "[engine]\nmax_widht = 3\n")
	if _, err := loadConfig(typo); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown keys error, got %v", err)
	}
	negative := writeFile(t, dir, "neg.toml", "[engine]\nmax_width = -1\n")
	if _, err := loadConfig(negative); err == nil {
		t.Fatal("expected negative max_width error")
	}
}

func TestCheck_ConfigUnionPolicy(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gohint.toml", "[engine]\nunion_policy = \"all\"\n[output]\ncolor = \"off\"\n")
	doc := writeFile(t, dir, "doc.json", `[1.5]`)
	out, _, err := runCLI(t, "", "--config", cfgPath, "check", "--hint", "list[int] | dict[str, int]", doc)
	if !errors.Is(err, errViolations) {
		t.Fatalf("expected errViolations, got %v", err)
	}
	if !strings.Contains(out, "branch 0:") || !strings.Contains(out, "branch 1:") {
		t.Fatalf("expected per-branch causes, got %q", out)
	}
}

func TestSchema_PrintsDocument(t *testing.T) {
	out, _, err := runCLI(t, "", "schema", "--hint", "dict[str, list[int]]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc["title"] != "dict[str, list[int]]" || doc["type"] != "object" {
		t.Fatalf("unexpected schema: %v", doc)
	}
	if _, ok := doc["$schema"]; !ok {
		t.Fatalf("missing $schema: %v", doc)
	}
}

func TestVersion_JSON(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Tool != "gohint" || p.Version != version {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	for mode, want := range map[string]bool{"on": true, "always": true, "off": false, "never": false, "auto": false} {
		got, err := colorEnabled(mode, &buf)
		if err != nil || got != want {
			t.Fatalf("colorEnabled(%q) = %v, %v", mode, got, err)
		}
	}
}

func TestCheck_RejectDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dup.json", `{"a": 1, "a": 2}`)
	if _, _, err := runCLI(t, "", "check", "--color", "off", "--hint", "dict[str, int]", doc); err != nil {
		t.Fatalf("lenient check failed: %v", err)
	}
	out, _, err := runCLI(t, "", "check", "--color", "off", "--reject-duplicate-keys", "--hint", "dict[str, int]", doc)
	if !errors.Is(err, errViolations) || !strings.Contains(out, `duplicate key "a" at /a`) {
		t.Fatalf("expected duplicate key failure, got %v\n%s", err, out)
	}
}
