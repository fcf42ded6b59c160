package models

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue = interface{}

// JSONObject represents a JSON object. Keys keep the order in which they
// appeared in the source document.
type JSONObject = orderedmap.OrderedMap[string, JSONValue]

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// NewJSONObject returns an empty ordered JSON object.
func NewJSONObject() *JSONObject {
	return orderedmap.New[string, JSONValue]()
}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// MarshalJSON renders an absent value as null so pretty-printing never fails.
func (undefinedValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Undefined marks an absent value. The parser never produces it; Go callers
// building a value tree by hand use it for fields that exist but carry no value.
var Undefined JSONValue = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v JSONValue) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// IntermediateRepresentation is a structure to hold the parsed JSON data
// in a way that's easy for the analyzer to work with.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}

// Kind classifies an inferred type.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindUndefined
	KindString
	KindNumber
	KindBoolean
	KindDate
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindString:    "string",
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindDate:      "Date",
}

// TypeInfo describes the inferred shape of a JSON value.
type TypeInfo struct {
	Kind   Kind
	Elem   *TypeInfo   // element type for KindArray
	Fields []FieldInfo // ordered fields for KindObject
}

// FieldInfo is one key of an object shape.
type FieldInfo struct {
	Key  string
	Type TypeInfo
}

// ArrayOf returns an array type wrapping elem.
func ArrayOf(elem TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindArray, Elem: &elem}
}

// Render writes the declaration text of t. indent is the indentation of the
// line the type starts on, step is added once per nesting level.
func (t TypeInfo) Render(indent, step string) string {
	var sb strings.Builder
	t.render(&sb, indent, step)
	return sb.String()
}

func (t TypeInfo) render(sb *strings.Builder, indent, step string) {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			sb.WriteString("unknown[]")
			return
		}
		t.Elem.render(sb, indent, step)
		sb.WriteString("[]")
	case KindObject:
		inner := indent + step
		sb.WriteString("{\n")
		for _, f := range t.Fields {
			sb.WriteString(inner)
			sb.WriteString(f.Key)
			sb.WriteString(": ")
			f.Type.render(sb, inner, step)
			sb.WriteString(";\n")
		}
		sb.WriteString(indent)
		sb.WriteString("}")
	default:
		name, ok := kindNames[t.Kind]
		if !ok {
			name = kindNames[KindUnknown]
		}
		sb.WriteString(name)
	}
}

// Signature is the canonical zero-indent rendering of t. Two types are the
// same shape exactly when their signatures are equal.
func (t TypeInfo) Signature() string {
	return t.Render("", "  ")
}

// String implements fmt.Stringer
func (t TypeInfo) String() string {
	return t.Signature()
}
