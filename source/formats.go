package source

import (
	"bytes"
	"errors"
	"io"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Built-in format names.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatTOML    = "toml"
	FormatMsgpack = "msgpack"
)

var errTrailingData = errors.New("trailing data after document")

func init() {
	Register(FormatJSON, jsonDecoder{}, ".json")
	Register(FormatYAML, yamlDecoder{}, ".yaml", ".yml")
	Register(FormatTOML, tomlDecoder{}, ".toml")
	Register(FormatMsgpack, msgpackDecoder{}, ".msgpack", ".mpk")
}

// jsonDecoder keeps numbers as json.Number so no precision is lost before
// normalization.
type jsonDecoder struct{}

func (jsonDecoder) Name() string { return "go-json" }

func (jsonDecoder) Decode(r io.Reader, opt Options) (any, error) {
	if opt.RejectDuplicateKeys {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := findDuplicateKey(data); err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

// yamlDecoder reads the first document of a stream. An empty stream decodes
// to nil.
type yamlDecoder struct{}

func (yamlDecoder) Name() string { return "yaml.v3" }

func (yamlDecoder) Decode(r io.Reader, _ Options) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

type tomlDecoder struct{}

func (tomlDecoder) Name() string { return "toml" }

func (tomlDecoder) Decode(r io.Reader, _ Options) (any, error) {
	m := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

type msgpackDecoder struct{}

func (msgpackDecoder) Name() string { return "msgpack" }

func (msgpackDecoder) Decode(r io.Reader, _ Options) (any, error) {
	var v any
	if err := msgpack.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
