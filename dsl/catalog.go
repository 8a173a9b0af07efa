package dsl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	gohint "github.com/reoring/gohint"
)

// Catalog errors.
var (
	ErrCatalogFormat = errors.New("dsl: unsupported catalog format")
	ErrNoVersion     = errors.New("dsl: catalog has no version")
	ErrVersion       = errors.New("dsl: catalog version not accepted")
)

// CatalogFormat selects the document syntax of a catalog.
type CatalogFormat string

const (
	FormatYAML CatalogFormat = "yaml"
	FormatTOML CatalogFormat = "toml"
	FormatJSON CatalogFormat = "json"
)

// FormatForPath infers the catalog format from a file extension.
func FormatForPath(path string) (CatalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCatalogFormat, path)
}

// CatalogOptions configures catalog loading.
type CatalogOptions struct {
	// Signs makes user-defined signs available to entries.
	Signs map[string]gohint.Sign
	// Constraint, when set, must be satisfied by the catalog version
	// (Masterminds/semver syntax, e.g. ">= 1.2, < 2").
	Constraint string
}

// catalogDoc is the on-disk shape shared by every format:
//
//	version: "1.0.0"
//	hints:
//	  user_id: int
//	  user: dict[str, user_id | str]
type catalogDoc struct {
	Version string            `yaml:"version" toml:"version" json:"version"`
	Hints   map[string]string `yaml:"hints" toml:"hints" json:"hints"`
}

// Catalog is a set of named hints. Entries may refer to one another by name;
// references are resolved at load time and cycles are rejected.
type Catalog struct {
	Version *semver.Version
	exprs   map[string]string
	hints   map[string]gohint.Hint
}

// LoadCatalog reads and resolves the catalog at path.
func LoadCatalog(path string, opt CatalogOptions) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dsl: read catalog: %w", err)
	}
	c, err := ParseCatalog(data, format, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a catalog document and resolves its entries.
func ParseCatalog(data []byte, format CatalogFormat, opt CatalogOptions) (*Catalog, error) {
	var doc catalogDoc
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("dsl: decode yaml catalog: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("dsl: decode toml catalog: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("dsl: decode json catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrCatalogFormat, format)
	}

	c := &Catalog{exprs: doc.Hints, hints: make(map[string]gohint.Hint, len(doc.Hints))}
	if c.exprs == nil {
		c.exprs = map[string]string{}
	}
	if doc.Version != "" {
		v, err := semver.NewVersion(doc.Version)
		if err != nil {
			return nil, fmt.Errorf("dsl: catalog version %q: %w", doc.Version, err)
		}
		c.Version = v
	}
	if opt.Constraint != "" {
		if err := c.Require(opt.Constraint); err != nil {
			return nil, err
		}
	}
	if err := c.resolveAll(opt.Signs); err != nil {
		return nil, err
	}
	return c, nil
}

// Require checks the catalog version against a semver constraint.
func (c *Catalog) Require(constraint string) error {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("dsl: constraint %q: %w", constraint, err)
	}
	if c.Version == nil {
		return ErrNoVersion
	}
	if ok, errs := cons.Validate(c.Version); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("%w: %s", ErrVersion, strings.Join(msgs, "; "))
	}
	return nil
}

// Lookup returns the resolved hint named name.
func (c *Catalog) Lookup(name string) (gohint.Hint, bool) {
	h, ok := c.hints[name]
	return h, ok
}

// Expr returns the source expression of an entry.
func (c *Catalog) Expr(name string) (string, bool) {
	e, ok := c.exprs[name]
	return e, ok
}

// Names returns the entry names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.exprs))
	for n := range c.exprs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Env returns an Env in which the catalog entries are names, for parsing
// ad-hoc expressions against the catalog.
func (c *Catalog) Env(signs map[string]gohint.Sign) *Env {
	names := make(map[string]gohint.Hint, len(c.hints))
	for k, v := range c.hints {
		names[k] = v
	}
	return &Env{Names: names, Signs: signs}
}

type resolveState int

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// resolveAll lowers every entry, following references depth first.
func (c *Catalog) resolveAll(userSigns map[string]gohint.Sign) error {
	state := make(map[string]resolveState, len(c.exprs))
	var resolve func(name string) (gohint.Hint, bool, error)
	resolve = func(name string) (gohint.Hint, bool, error) {
		expr, ok := c.exprs[name]
		if !ok {
			return nil, false, nil
		}
		switch state[name] {
		case resolved:
			return c.hints[name], true, nil
		case resolving:
			return nil, false, &Error{Kind: ErrCycle, Expr: expr, Entry: name, Msg: "entry refers to itself"}
		}
		state[name] = resolving
		if err := c.checkName(name); err != nil {
			return nil, false, err
		}
		n, err := parseExpr(expr)
		if err != nil {
			return nil, false, withEntry(err, name)
		}
		l := lowerer{src: expr, resolve: resolve, signs: userSigns}
		h, err := l.lower(n)
		if err != nil {
			return nil, false, withEntry(err, name)
		}
		c.hints[name] = h
		state[name] = resolved
		return h, true, nil
	}
	for _, name := range c.Names() {
		if _, _, err := resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// checkName rejects entries that shadow a built-in name.
func (c *Catalog) checkName(entry string) error {
	if _, ok := primitives[entry]; ok {
		return &Error{Kind: ErrArgument, Expr: c.exprs[entry], Entry: entry, Msg: "entry shadows a built-in hint"}
	}
	if _, ok := signs[entry]; ok {
		return &Error{Kind: ErrArgument, Expr: c.exprs[entry], Entry: entry, Msg: "entry shadows a built-in sign"}
	}
	return nil
}

func withEntry(err error, name string) error {
	if de, ok := AsError(err); ok && de.Entry == "" {
		cp := *de
		cp.Entry = name
		return &cp
	}
	return err
}
