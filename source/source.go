// Package source decodes documents (JSON, YAML, TOML, msgpack) into generic
// Go values ready to be checked against hints.
//
// Decoded values are normalized so the same document yields the same shape
// in every format: objects become map[string]any (map[any]any only when a
// key is not a string), arrays []any, and numbers follow NumberMode.
//
// Decoders are pluggable: Register replaces or adds a format.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// NumberMode selects how decoded numbers are represented.
type NumberMode int

const (
	// NumberNormalize turns integral numbers into int (or uint64 / int64 when
	// they do not fit) and every other number into float64.
	NumberNormalize NumberMode = iota
	// NumberJSONNumber keeps JSON numbers as json.Number text; other formats
	// behave as NumberNormalize.
	NumberJSONNumber
	// NumberFloat64 turns every number into float64.
	NumberFloat64
)

// Options configures decoding.
type Options struct {
	NumberMode NumberMode
	// RejectDuplicateKeys makes JSON objects with a repeated member name an
	// error instead of keeping the last value.
	RejectDuplicateKeys bool
}

// Decoder decodes one document of a format into raw Go values. Results are
// normalized by the package before being returned to callers.
type Decoder interface {
	Decode(r io.Reader, opt Options) (any, error)
	Name() string
}

// ErrUnknownFormat reports a format or file extension with no decoder.
var ErrUnknownFormat = errors.New("source: unknown format")

var (
	registryMu sync.RWMutex
	decoders   = map[string]Decoder{}
	extensions = map[string]string{}
)

// Register installs d for format and maps the given file extensions (with
// leading dot) to it. A later registration of the same format wins.
func Register(format string, d Decoder, exts ...string) {
	if d == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	decoders[format] = d
	for _, e := range exts {
		extensions[strings.ToLower(e)] = format
	}
}

// Lookup returns the decoder registered for format.
func Lookup(format string) (Decoder, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := decoders[format]
	return d, ok
}

// Formats lists registered format names in sorted order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(decoders))
	for f := range decoders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FormatForPath infers the format from the file extension of path.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	registryMu.RLock()
	f, ok := extensions[ext]
	registryMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

// Decode reads one document of the given format from r.
func Decode(r io.Reader, format string, opt Options) (any, error) {
	d, ok := Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	v, err := d.Decode(r, opt)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", d.Name(), err)
	}
	return Normalize(v, opt.NumberMode), nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte, format string, opt Options) (any, error) {
	return Decode(bytes.NewReader(b), format, opt)
}

// DecodeFile decodes the file at path, choosing the format by extension.
func DecodeFile(path string, opt Options) (any, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := Decode(f, format, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
