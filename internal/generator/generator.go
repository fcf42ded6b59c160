package generator

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/analyzer"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/cache"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// DefaultInterfaceName is used by callers when the user leaves the name blank.
const DefaultInterfaceName = "GeneratedInterface"

// envelopeKey is the conventional wrapper key stripped by UnwrapEnvelope.
const envelopeKey = "data"

// Options controls a single generation call.
type Options struct {
	// UnwrapEnvelope replaces an object's "data" member with its value, then
	// a non-empty array with its first element, before inference.
	UnwrapEnvelope bool
	// IndentWidth is the number of spaces per nesting level. Must be positive.
	IndentWidth int
	// DetectDates renders ISO-8601 looking strings as Date.
	DetectDates bool
	// CacheSize bounds the shape cache; non-positive selects the default.
	CacheSize int
}

// DefaultOptions returns the options matching the classic output.
func DefaultOptions() Options {
	return Options{
		IndentWidth: analyzer.DefaultIndentWidth,
	}
}

// Generator turns JSON values into interface declarations. It holds no
// per-call state, so one Generator can serve concurrent callers.
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders value as `interface <interfaceName> { ... }`.
// It fails with errors.ErrInvalidInput when value is neither an object nor an
// array, when interfaceName is blank or when the indent width is not
// positive, and with errors.ErrUnsupportedRootShape when the value is not an
// object after preprocessing.
func (g *Generator) Generate(value models.JSONValue, interfaceName string, opts Options) (string, error) {
	if strings.TrimSpace(interfaceName) == "" {
		return "", errors.NewGenerateError("interface name must not be empty", errors.ErrInvalidInput)
	}
	if opts.IndentWidth <= 0 {
		return "", errors.NewGenerateError(fmt.Sprintf("indent width must be positive, got %d", opts.IndentWidth), errors.ErrInvalidInput)
	}
	if !isContainer(value) {
		return "", errors.NewGenerateError(fmt.Sprintf("value must be a JSON object or array, got %s", describeRoot(value)), errors.ErrInvalidInput)
	}

	if opts.UnwrapEnvelope {
		value = unwrap(value)
	}

	// Each call gets its own cache; nothing carries over between calls.
	shapes, err := cache.NewShapeCache(opts.CacheSize)
	if err != nil {
		return "", errors.NewGenerateError("failed to create shape cache", err)
	}
	an := analyzer.NewAnalyzer(shapes, analyzer.Options{
		IndentWidth: opts.IndentWidth,
		DetectDates: opts.DetectDates,
	})

	root := an.Describe(value)
	if root.Kind != models.KindObject {
		return "", errors.NewGenerateError(fmt.Sprintf("root is %s after preprocessing, want an object", describeRoot(value)), errors.ErrUnsupportedRootShape)
	}

	var buf bytes.Buffer
	step := an.Step()
	buf.WriteString(fmt.Sprintf("interface %s {\n", interfaceName))
	for _, field := range root.Fields {
		buf.WriteString(fmt.Sprintf("%s%s: %s;\n", step, field.Key, field.Type.Render(step, step)))
	}
	buf.WriteString("}")

	stats := shapes.Stats()
	slog.Debug("interface generated",
		slog.String("name", interfaceName),
		slog.Int("fields", len(root.Fields)),
		slog.Int("shapes", shapes.Len()),
		slog.Int("cache_hits", stats.Hits),
		slog.Int("cache_misses", stats.Misses),
	)

	return buf.String(), nil
}

// unwrap applies the envelope convention once: take the "data" member of an
// object, then the first element of a non-empty array.
func unwrap(value models.JSONValue) models.JSONValue {
	switch v := value.(type) {
	case *models.JSONObject:
		if v != nil {
			if inner, ok := v.Get(envelopeKey); ok {
				value = inner
			}
		}
	case map[string]interface{}:
		if inner, ok := v[envelopeKey]; ok {
			value = inner
		}
	}

	switch v := value.(type) {
	case models.JSONArray:
		if len(v) > 0 {
			value = v[0]
		}
	case []interface{}:
		if len(v) > 0 {
			value = v[0]
		}
	}
	return value
}

func isContainer(value models.JSONValue) bool {
	switch v := value.(type) {
	case *models.JSONObject:
		return v != nil
	case map[string]interface{}, models.JSONArray, []interface{}:
		return true
	default:
		return false
	}
}

func describeRoot(value models.JSONValue) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *models.JSONObject:
		if v == nil {
			return "null"
		}
		return "an object"
	case map[string]interface{}:
		return "an object"
	case models.JSONArray:
		if len(v) == 0 {
			return "an empty array"
		}
		return "an array"
	case []interface{}:
		if len(v) == 0 {
			return "an empty array"
		}
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		if models.IsUndefined(v) {
			return "undefined"
		}
		return fmt.Sprintf("a %T", v)
	}
}
