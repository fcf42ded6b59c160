package analyzer

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/cache"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 2

// Date patterns (ordered by specificity - most specific first)
var (
	rfc3339NanoRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{9}(Z|[+-]\d{2}:\d{2})$`)             // 2006-01-02T15:04:05.999999999Z
	rfc3339Regex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)            // 2006-01-02T15:04:05Z
	iso8601Regex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // ISO8601 variants
	dateOnlyRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                         // 2006-01-02
	dateTimeRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                               // 2006-01-02 15:04:05

	datePatterns = []*regexp.Regexp{rfc3339NanoRegex, rfc3339Regex, iso8601Regex, dateOnlyRegex, dateTimeRegex}
)

// Options controls shape inference.
type Options struct {
	// IndentWidth is the number of spaces added per nesting level.
	IndentWidth int
	// DetectDates renders strings that look like ISO-8601 dates as Date.
	// time.Time values are always Date.
	DetectDates bool
}

// Analyzer infers the shape of JSON values and renders it as declaration text.
type Analyzer struct {
	// shapes memoizes object shapes by fingerprint
	shapes      *cache.ShapeCache
	step        string
	detectDates bool
}

// NewAnalyzer creates an Analyzer that memoizes object shapes in shapes.
// A nil cache disables memoization.
func NewAnalyzer(shapes *cache.ShapeCache, opts Options) *Analyzer {
	width := opts.IndentWidth
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return &Analyzer{
		shapes:      shapes,
		step:        strings.Repeat(" ", width),
		detectDates: opts.DetectDates,
	}
}

// Step returns the indentation added per nesting level.
func (a *Analyzer) Step() string {
	return a.step
}

// Infer returns the declaration text for value. indent is the indentation of
// the line the type is written on; nested object bodies go one step deeper.
func (a *Analyzer) Infer(value models.JSONValue, indent string) string {
	return a.Describe(value).Render(indent, a.step)
}

// Describe classifies value into a type descriptor. Every value maps to some
// descriptor; unrecognized Go types become unknown.
func (a *Analyzer) Describe(value models.JSONValue) models.TypeInfo {
	switch v := value.(type) {
	case nil:
		return models.TypeInfo{Kind: models.KindNull}
	case bool:
		return models.TypeInfo{Kind: models.KindBoolean}
	case string:
		return a.analyzeString(v)
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return models.TypeInfo{Kind: models.KindNumber}
	case time.Time, *time.Time:
		return models.TypeInfo{Kind: models.KindDate}
	case *models.JSONObject:
		if v == nil {
			return models.TypeInfo{Kind: models.KindNull}
		}
		return a.analyzeObject(v)
	case map[string]interface{}:
		return a.analyzeMap(v)
	case models.JSONArray:
		return a.analyzeArray(v)
	case []interface{}:
		return a.analyzeArray(v)
	default:
		if models.IsUndefined(v) {
			return models.TypeInfo{Kind: models.KindUndefined}
		}
		return models.TypeInfo{Kind: models.KindUnknown}
	}
}

func (a *Analyzer) analyzeString(s string) models.TypeInfo {
	if a.detectDates && IsDateString(s) {
		return models.TypeInfo{Kind: models.KindDate}
	}
	return models.TypeInfo{Kind: models.KindString}
}

// IsDateString reports whether s matches one of the recognized date layouts.
func IsDateString(s string) bool {
	for _, re := range datePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// analyzeArray yields T[] when every element has the same shape as the first
// one and unknown[] otherwise. Mixed arrays are not merged into unions.
func (a *Analyzer) analyzeArray(arr []interface{}) models.TypeInfo {
	if len(arr) == 0 {
		return models.ArrayOf(models.TypeInfo{Kind: models.KindUnknown})
	}

	first := a.Describe(arr[0])
	signature := first.Signature()
	for _, element := range arr[1:] {
		if a.Describe(element).Signature() != signature {
			return models.ArrayOf(models.TypeInfo{Kind: models.KindUnknown})
		}
	}
	return models.ArrayOf(first)
}

func (a *Analyzer) analyzeObject(obj *models.JSONObject) models.TypeInfo {
	return a.memoize(obj, func() []models.FieldInfo {
		fields := make([]models.FieldInfo, 0, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			fields = append(fields, models.FieldInfo{Key: pair.Key, Type: a.Describe(pair.Value)})
		}
		return fields
	})
}

// analyzeMap handles plain Go maps handed in by library callers. They carry
// no key order, so keys are visited alphabetically for deterministic output.
func (a *Analyzer) analyzeMap(m map[string]interface{}) models.TypeInfo {
	return a.memoize(m, func() []models.FieldInfo {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fields := make([]models.FieldInfo, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, models.FieldInfo{Key: k, Type: a.Describe(m[k])})
		}
		return fields
	})
}

func (a *Analyzer) memoize(obj models.JSONValue, derive func() []models.FieldInfo) models.TypeInfo {
	if a.shapes == nil {
		return models.TypeInfo{Kind: models.KindObject, Fields: derive()}
	}

	fp := Fingerprint(obj)
	if shape, ok := a.shapes.Get(fp); ok {
		return shape.Type
	}

	t := models.TypeInfo{Kind: models.KindObject, Fields: derive()}
	a.shapes.Put(fp, t)
	return t
}
