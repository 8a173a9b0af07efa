package i18n

import (
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Message codes used by cause handlers.
const (
	CodeTypeMismatch    = "type_mismatch"
	CodeValueMismatch   = "value_mismatch"
	CodeOriginMismatch  = "origin_mismatch"
	CodeSequenceItem    = "sequence_item"
	CodeTupleLength     = "tuple_length"
	CodeMappingKey      = "mapping_key"
	CodeMappingValue    = "mapping_value"
	CodeSetMember       = "set_member"
	CodeUnionAll        = "union_all"
	CodeUnionBranch     = "union_branch"
	CodeLiteralMismatch = "literal_mismatch"
	CodePointerNil      = "pointer_nil"
	CodePointerElem     = "pointer_elem"
	CodeProtocolMethod  = "protocol_method"
)

// Translator retrieves localized messages for cause codes.
// data provides the values substituted for {name} placeholders (for example,
// "actual" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

var templates = map[string]map[string]string{
	"en": {
		CodeTypeMismatch:    "{actual} not {expected}",
		CodeValueMismatch:   "{actual} != {expected}",
		CodeOriginMismatch:  "{actual} not {expected}",
		CodeSequenceItem:    "{type} index {index} item {cause}",
		CodeTupleLength:     "{type} length {got} not {want}",
		CodeMappingKey:      "{type} key {cause}",
		CodeMappingValue:    "{type} value at key {key} {cause}",
		CodeSetMember:       "{type} member {cause}",
		CodeUnionAll:        "{actual} violates every branch of {hint}:",
		CodeUnionBranch:     "branch {index}: {cause}",
		CodeLiteralMismatch: "{actual} not any of {expected}",
		CodePointerNil:      "{actual} not non-nil {expected}",
		CodePointerElem:     "{type} pointee {cause}",
		CodeProtocolMethod:  "{actual} lacks method {method} of protocol {protocol}",
	},
	"ja": {
		CodeTypeMismatch:    "{actual} は {expected} ではありません",
		CodeValueMismatch:   "{actual} は {expected} と等しくありません",
		CodeOriginMismatch:  "{actual} は {expected} ではありません",
		CodeSequenceItem:    "{type} のインデックス {index} の要素: {cause}",
		CodeTupleLength:     "{type} の長さ {got} は {want} ではありません",
		CodeMappingKey:      "{type} のキー: {cause}",
		CodeMappingValue:    "{type} のキー {key} の値: {cause}",
		CodeSetMember:       "{type} の要素: {cause}",
		CodeUnionAll:        "{actual} は {hint} のどの分岐にも一致しません:",
		CodeUnionBranch:     "分岐 {index}: {cause}",
		CodeLiteralMismatch: "{actual} は {expected} のいずれでもありません",
		CodePointerNil:      "{actual} は nil でない {expected} ではありません",
		CodePointerElem:     "{type} の参照先: {cause}",
		CodeProtocolMethod:  "{actual} にはプロトコル {protocol} のメソッド {method} がありません",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		tpl, ok = templates["en"][code]
	}
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var supported = language.NewMatcher([]language.Tag{language.English, language.Japanese})

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator to the best match for tag
// among "en" and "ja" (for example "ja-JP" selects Japanese). Unparseable
// tags select English.
func SetLanguage(tag string) {
	current.Store(&holder{tr: dictTranslator{lang: Match(tag)}})
}

// Match returns the supported base language ("en" or "ja") closest to tag.
func Match(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return "en"
	}
	_, idx, conf := supported.Match(t)
	if conf == language.No || idx != 1 {
		return "en"
	}
	return "ja"
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
