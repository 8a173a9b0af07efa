package gohint

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Sign identifies the category of a compliant hint independently of its
// children (for example "list" for both list[int] and list[string]).
//
// A Sign is itself a valid Hint: used bare, it denotes the unparameterized
// category and is checked against its origin kinds only.
type Sign uint16

const (
	_ Sign = iota
	SignUnion
	SignList
	SignTuple
	SignMapping
	SignSet
	SignLiteral
	SignPointer
	SignProtocol
	SignAnnotated

	// signUserBase is the first value handed out by DefineSign.
	signUserBase Sign = 64
)

type signInfo struct {
	name    string
	origins []reflect.Kind
}

var (
	signMu    sync.RWMutex
	signTable = map[Sign]signInfo{
		SignUnion:     {name: "union"},
		SignList:      {name: "list", origins: []reflect.Kind{reflect.Slice, reflect.Array}},
		SignTuple:     {name: "tuple", origins: []reflect.Kind{reflect.Slice, reflect.Array}},
		SignMapping:   {name: "dict", origins: []reflect.Kind{reflect.Map}},
		SignSet:       {name: "set", origins: []reflect.Kind{reflect.Map}},
		SignLiteral:   {name: "literal"},
		SignPointer:   {name: "ptr", origins: []reflect.Kind{reflect.Pointer}},
		SignProtocol:  {name: "protocol"},
		SignAnnotated: {name: "annotated"},
	}
	nextUserSign = signUserBase
)

// DefineSign registers a new hint category. origins lists the reflect kinds
// a value must have to satisfy the bare sign; it may be empty, in which case
// the bare sign cannot be diagnosed.
//
// DefineSign is meant to be called from package init functions, before any
// Engine that should know about the sign is constructed.
func DefineSign(name string, origins ...reflect.Kind) Sign {
	signMu.Lock()
	defer signMu.Unlock()
	s := nextUserSign
	nextUserSign++
	signTable[s] = signInfo{name: name, origins: append([]reflect.Kind(nil), origins...)}
	return s
}

func (s Sign) info() (signInfo, bool) {
	signMu.RLock()
	defer signMu.RUnlock()
	in, ok := signTable[s]
	return in, ok
}

// String returns the sign's name as used in hint expressions.
func (s Sign) String() string {
	if in, ok := s.info(); ok {
		return in.name
	}
	return fmt.Sprintf("sign(%d)", uint16(s))
}

// Origins returns the reflect kinds accepted by the bare sign.
func (s Sign) Origins() []reflect.Kind {
	in, _ := s.info()
	return append([]reflect.Kind(nil), in.origins...)
}

// originString renders origin kinds as "slice or array".
func originString(kinds []reflect.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, " or ")
}
