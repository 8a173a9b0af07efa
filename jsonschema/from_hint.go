package jsonschema

import (
	"fmt"
	"reflect"
	"strings"

	gohint "github.com/reoring/gohint"
)

// Document projects h into a standalone schema carrying the draft URI and
// title.
func Document(h gohint.Hint, title string) (*Schema, error) {
	s, err := FromHint(h)
	if err != nil {
		return nil, err
	}
	s.SchemaURI = Draft
	s.Title = title
	return s, nil
}

// FromHint projects a hint onto JSON Schema. Only the JSON-representable part
// of a hint survives: pointers become their element, sets become objects
// whose property names follow the member hint, and protocols (which JSON
// values cannot have) become the empty schema with a description.
//
// Signs without a projection (user signs, bare union or literal) fail with
// gohint.ErrUnsupportedHint; subscripted signs without children with
// gohint.ErrMalformedHint.
func FromHint(h gohint.Hint) (*Schema, error) {
	if a, ok := h.(*gohint.AnnotatedHint); ok {
		s, err := FromHint(a.Origin())
		if err != nil {
			return nil, err
		}
		meta := a.Metadata()
		parts := make([]string, len(meta))
		for i, m := range meta {
			parts[i] = fmt.Sprint(m)
		}
		s.Comment = strings.Join(parts, ", ")
		return s, nil
	}
	if gohint.IsIgnorable(h) {
		return &Schema{}, nil
	}
	sign, children, ok := gohint.Classify(h)
	if !ok {
		return fromPlain(h)
	}
	if bare, isSign := h.(gohint.Sign); isSign && bare == sign {
		return fromBareSign(sign)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %s", gohint.ErrMalformedHint, gohint.HintString(h))
	}

	switch sign {
	case gohint.SignUnion:
		members, err := fromAll(children)
		if err != nil {
			return nil, err
		}
		return &Schema{AnyOf: members}, nil
	case gohint.SignList:
		item, err := FromHint(children[0])
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: item}, nil
	case gohint.SignTuple:
		items, err := fromAll(children)
		if err != nil {
			return nil, err
		}
		n := len(items)
		return &Schema{Type: "array", PrefixItems: items, MinItems: &n, MaxItems: &n}, nil
	case gohint.SignMapping:
		if len(children) < 2 {
			return nil, fmt.Errorf("%w: %s", gohint.ErrMalformedHint, gohint.HintString(h))
		}
		value, err := FromHint(children[1])
		if err != nil {
			return nil, err
		}
		s := &Schema{Type: "object", AdditionalProperties: value}
		if s.PropertyNames, err = propertyNames(children[0]); err != nil {
			return nil, err
		}
		return s, nil
	case gohint.SignSet:
		names, err := propertyNames(children[0])
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", PropertyNames: names}, nil
	case gohint.SignLiteral:
		values := make([]any, len(children))
		copy(values, children)
		return &Schema{Enum: values}, nil
	case gohint.SignPointer:
		return FromHint(children[0])
	case gohint.SignProtocol:
		return &Schema{Description: "protocol " + gohint.HintString(h)}, nil
	}
	return nil, fmt.Errorf("%w: %s", gohint.ErrUnsupportedHint, gohint.HintString(h))
}

func fromAll(hints []gohint.Hint) ([]*Schema, error) {
	out := make([]*Schema, len(hints))
	for i, c := range hints {
		s, err := FromHint(c)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func fromBareSign(sign gohint.Sign) (*Schema, error) {
	switch sign {
	case gohint.SignList, gohint.SignTuple:
		return &Schema{Type: "array"}, nil
	case gohint.SignMapping, gohint.SignSet:
		return &Schema{Type: "object"}, nil
	case gohint.SignProtocol:
		return &Schema{}, nil
	}
	return nil, fmt.Errorf("%w: %s", gohint.ErrUnsupportedHint, sign)
}

// propertyNames constrains object keys. JSON keys are strings, so string
// hints need no constraint and integer hints become a digit pattern.
func propertyNames(key gohint.Hint) (*Schema, error) {
	s, err := FromHint(key)
	if err != nil {
		return nil, err
	}
	switch {
	case s.Type == "string" && s.Pattern == "" && s.ContentEncoding == "", reflect.DeepEqual(s, &Schema{}):
		return nil, nil
	case s.Type == "integer":
		return &Schema{Type: "string", Pattern: `^-?[0-9]+$`}, nil
	case s.Type == "string", s.Enum != nil, s.Const != nil, s.AnyOf != nil:
		return s, nil
	}
	return nil, fmt.Errorf("%w: key hint %s has no JSON form", gohint.ErrUnsupportedHint, gohint.HintString(key))
}

func fromPlain(h gohint.Hint) (*Schema, error) {
	switch t := h.(type) {
	case nil:
		return &Schema{Type: "null"}, nil
	case reflect.Type:
		return fromType(t, map[reflect.Type]bool{})
	}
	if h == gohint.None {
		return &Schema{Type: "null"}, nil
	}
	return &Schema{Const: h}, nil
}

// fromType projects a Go type. seen guards against recursive struct types,
// which are cut off with an empty schema.
func fromType(t reflect.Type, seen map[reflect.Type]bool) (*Schema, error) {
	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", ContentEncoding: "base64"}, nil
		}
		item, err := fromType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		s := &Schema{Type: "array", Items: item}
		if t.Kind() == reflect.Array {
			n := t.Len()
			s.MinItems, s.MaxItems = &n, &n
		}
		return s, nil
	case reflect.Map:
		value, err := fromType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		s := &Schema{Type: "object", AdditionalProperties: value}
		if s.PropertyNames, err = propertyNames(t.Key()); err != nil {
			return nil, err
		}
		return s, nil
	case reflect.Pointer:
		return fromType(t.Elem(), seen)
	case reflect.Struct:
		if seen[t] {
			return &Schema{Description: "recursive " + t.String()}, nil
		}
		seen[t] = true
		defer delete(seen, t)
		return fromStruct(t, seen)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return &Schema{}, nil
		}
		return &Schema{Description: "implements " + t.String()}, nil
	}
	return nil, fmt.Errorf("%w: %s has no JSON form", gohint.ErrUnsupportedHint, t)
}

// fromStruct follows encoding/json field naming: the json tag name when
// present, "-" skips the field, unexported fields are skipped.
func fromStruct(t reflect.Type, seen map[reflect.Type]bool) (*Schema, error) {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fs, err := fromType(f.Type, seen)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		s.Properties[name] = fs
		if !strings.Contains(opts, "omitempty") && f.Type.Kind() != reflect.Pointer {
			s.Required = append(s.Required, name)
		}
	}
	return s, nil
}
