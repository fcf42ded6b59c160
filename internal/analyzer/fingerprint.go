package analyzer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// Fingerprint returns the canonical serialization of value used as a shape
// cache key. For plain JSON it is compact JSON with keys in document order.
// Undefined and time values get their own tokens so they never collide with
// null or strings.
func Fingerprint(value models.JSONValue) string {
	var sb strings.Builder
	writeFingerprint(&sb, value)
	return sb.String()
}

func writeFingerprint(sb *strings.Builder, value models.JSONValue) {
	switch v := value.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case string:
		sb.WriteString(strconv.Quote(v))
	case json.Number:
		sb.WriteString(string(v))
	case float64:
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case float32:
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprint(sb, v)
	case time.Time:
		sb.WriteString("Date(" + v.Format(time.RFC3339Nano) + ")")
	case *time.Time:
		if v == nil {
			sb.WriteString("Date()")
			return
		}
		sb.WriteString("Date(" + v.Format(time.RFC3339Nano) + ")")
	case *models.JSONObject:
		if v == nil {
			sb.WriteString("null")
			return
		}
		sb.WriteByte('{')
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Prev() != nil {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(pair.Key))
			sb.WriteByte(':')
			writeFingerprint(sb, pair.Value)
		}
		sb.WriteByte('}')
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			writeFingerprint(sb, v[k])
		}
		sb.WriteByte('}')
	case models.JSONArray:
		writeArrayFingerprint(sb, v)
	case []interface{}:
		writeArrayFingerprint(sb, v)
	default:
		if models.IsUndefined(v) {
			sb.WriteString("undefined")
			return
		}
		// every other value renders as unknown, so one token covers them all
		sb.WriteString("unknown")
	}
}

func writeArrayFingerprint(sb *strings.Builder, arr []interface{}) {
	sb.WriteByte('[')
	for i, el := range arr {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeFingerprint(sb, el)
	}
	sb.WriteByte(']')
}
