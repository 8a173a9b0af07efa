package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	gohint "github.com/reoring/gohint"
)

const configFileName = "gohint.toml"

type toolConfig struct {
	Engine engineConfig `toml:"engine"`
	Output outputConfig `toml:"output"`
}

type engineConfig struct {
	Indent      string `toml:"indent"`
	MaxWidth    int    `toml:"max_width"`
	CacheSize   int    `toml:"cache_size"`
	UnionPolicy string `toml:"union_policy"`
	Language    string `toml:"language"`
}

type outputConfig struct {
	Color string `toml:"color"`
}

func defaultConfig() toolConfig {
	return toolConfig{
		Engine: engineConfig{MaxWidth: 80, UnionPolicy: "last"},
		Output: outputConfig{Color: "auto"},
	}
}

// findConfig walks up from startDir looking for gohint.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig decodes path over the defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func loadConfig(path string) (toolConfig, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return toolConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return toolConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Engine.MaxWidth < 0 {
		return toolConfig{}, fmt.Errorf("%s: [engine].max_width must not be negative", path)
	}
	return cfg, nil
}

func (c toolConfig) engineOptions() (gohint.Options, error) {
	policy, ok := gohint.ParseUnionPolicy(c.Engine.UnionPolicy)
	if !ok {
		return gohint.Options{}, fmt.Errorf("invalid union policy %q (want last|all)", c.Engine.UnionPolicy)
	}
	return gohint.Options{
		IndentUnit:   c.Engine.Indent,
		MaxReprWidth: c.Engine.MaxWidth,
		CacheSize:    c.Engine.CacheSize,
		UnionPolicy:  policy,
	}, nil
}
