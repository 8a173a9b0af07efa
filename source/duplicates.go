package source

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrDuplicateKey reports a JSON object that repeats a member name. YAML and
// TOML decoders reject duplicates on their own.
var ErrDuplicateKey = errors.New("duplicate key")

type dupFrame struct {
	object    bool
	keys      map[string]struct{}
	expectKey bool
	key       string
	count     int
}

// findDuplicateKey scans a JSON document token by token and returns an
// ErrDuplicateKey error locating the first repeated member by JSON Pointer.
// Syntax errors are left for the real decode to report.
func findDuplicateKey(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []dupFrame

	beginValue := func() {
		if n := len(stack); n > 0 && !stack[n-1].object {
			stack[n-1].count++
		}
	}
	endValue := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].expectKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				beginValue()
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, expectKey: true})
			case '[':
				beginValue()
				stack = append(stack, dupFrame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				endValue()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					return fmt.Errorf("%w %q at %s", ErrDuplicateKey, v, pointer(stack[:n-1], v))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectKey = false
				continue
			}
			beginValue()
			endValue()
		default:
			beginValue()
			endValue()
		}
	}
}

// pointer renders the RFC 6901 pointer of member last inside the open
// containers of stack.
func pointer(stack []dupFrame, last string) string {
	b := &strings.Builder{}
	for _, f := range stack {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escapePointer(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.count - 1))
		}
	}
	b.WriteByte('/')
	b.WriteString(escapePointer(last))
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string { return pointerEscaper.Replace(s) }
