package e2e_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/generator"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/parser"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  "2023-05-20T14:56:23Z",
			"count":      depth,
			"enabled":    true,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})
	for i := 0; i < fieldCount; i++ {
		switch i % 4 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("list_field_%d", i)] = []string{"a", "b"}
		}
	}
	return result
}

// generateArrayJSON creates an object holding many records of the same shape
func generateArrayJSON(itemCount int) map[string]interface{} {
	items := make([]interface{}, itemCount)
	for i := range items {
		items[i] = map[string]interface{}{
			"id":    i,
			"name":  fmt.Sprintf("item %d", i),
			"price": float64(i) * 1.5,
			"tags":  []string{"x", "y"},
			"owner": map[string]interface{}{"id": i % 10, "email": "owner@example.com"},
		}
	}
	return map[string]interface{}{"items": items}
}

func parseDocument(b *testing.B, doc map[string]interface{}) models.JSONValue {
	b.Helper()
	data, err := json.Marshal(doc)
	require.NoError(b, err)
	ir, err := parser.ParseBytes(data)
	require.NoError(b, err)
	return ir.Root
}

func benchmarkGenerate(b *testing.B, root models.JSONValue) {
	gen := generator.NewGenerator()
	opts := generator.DefaultOptions()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(root, "Bench", opts); err != nil {
			b.Fatalf("generate failed: %v", err)
		}
	}
}

func BenchmarkDeepNesting(b *testing.B) {
	for _, depth := range []struct {
		name  string
		depth int
		width int
	}{
		{"Shallow", 2, 3},
		{"Medium", 4, 3},
		{"Deep", 6, 3},
	} {
		b.Run(depth.name, func(b *testing.B) {
			benchmarkGenerate(b, parseDocument(b, generateNestedJSON(depth.depth, depth.width)))
		})
	}
}

func BenchmarkWideStructures(b *testing.B) {
	for _, width := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Fields%d", width), func(b *testing.B) {
			benchmarkGenerate(b, parseDocument(b, generateWideJSON(width)))
		})
	}
}

func BenchmarkArrayProcessing(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Items%d", size), func(b *testing.B) {
			benchmarkGenerate(b, parseDocument(b, generateArrayJSON(size)))
		})
	}
}

func BenchmarkParse(b *testing.B) {
	data, err := json.Marshal(generateArrayJSON(1000))
	require.NoError(b, err)

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseBytes(data); err != nil {
			b.Fatalf("parse failed: %v", err)
		}
	}
}
