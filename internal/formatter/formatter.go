package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// DefaultIndent is the indentation used for pretty-printed JSON.
const DefaultIndent = "  "

// Formatter renders source JSON values for display next to the generated
// declaration.
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter using DefaultIndent
func NewFormatter() *Formatter {
	return &Formatter{indent: DefaultIndent}
}

// NewFormatterWithIndent creates a Formatter indenting by width spaces.
func NewFormatterWithIndent(width int) *Formatter {
	if width <= 0 {
		return NewFormatter()
	}
	return &Formatter{indent: strings.Repeat(" ", width)}
}

// FormatJSON pretty-prints value. Object keys keep their document order.
func (f *Formatter) FormatJSON(value models.JSONValue) (string, error) {
	raw, err := marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", f.indent); err != nil {
		return "", fmt.Errorf("failed to indent JSON: %w", err)
	}
	return out.String(), nil
}

// FormatDeclaration normalizes a generated declaration for output: trailing
// whitespace is trimmed and exactly one newline is appended.
func (f *Formatter) FormatDeclaration(declaration string) string {
	trimmed := strings.TrimRight(declaration, " \t\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}

// marshal encodes value without HTML escaping. Ordered objects are walked
// here rather than through their MarshalJSON, which escapes nested strings.
func marshal(value models.JSONValue) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, value models.JSONValue) error {
	switch v := value.(type) {
	case *models.JSONObject:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Prev() != nil {
				buf.WriteByte(',')
			}
			if err := encodeMember(buf, pair.Key, pair.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeMember(buf, k, v[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case models.JSONArray:
		return encodeArray(buf, v)
	case []interface{}:
		return encodeArray(buf, v)
	default:
		return encodeScalar(buf, v)
	}
	return nil
}

func encodeMember(buf *bytes.Buffer, key string, value models.JSONValue) error {
	if err := encodeScalar(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return encodeValue(buf, value)
}

func encodeArray(buf *bytes.Buffer, arr []interface{}) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, elem); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeScalar(buf *bytes.Buffer, value models.JSONValue) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
