package generator

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/parser"
)

func parse(t *testing.T, jsonStr string) models.JSONValue {
	t.Helper()
	ir, err := parser.ParseString(jsonStr)
	require.NoError(t, err)
	return ir.Root
}

func generate(t *testing.T, jsonStr, name string, opts Options) string {
	t.Helper()
	out, err := NewGenerator().Generate(parse(t, jsonStr), name, opts)
	require.NoError(t, err)
	return out
}

func TestGenerate_EmptyObject(t *testing.T) {
	assert.Equal(t, "interface Name {\n}", generate(t, `{}`, "Name", DefaultOptions()))
}

func TestGenerate_NestedObject(t *testing.T) {
	got := generate(t, `{"a": {"b": 1}}`, "Root", DefaultOptions())
	assert.Equal(t, "interface Root {\n  a: {\n    b: number;\n  };\n}", got)
}

func TestGenerate_FieldTypes(t *testing.T) {
	jsonStr := `{
		"id": 1,
		"name": "Alice",
		"active": true,
		"deleted_at": null,
		"xs": [1, 2, 3],
		"mixed": [1, "a"],
		"empty": [],
		"tags": [{"label": "x"}, {"label": "y"}]
	}`

	expected := "interface User {\n" +
		"  id: number;\n" +
		"  name: string;\n" +
		"  active: boolean;\n" +
		"  deleted_at: null;\n" +
		"  xs: number[];\n" +
		"  mixed: unknown[];\n" +
		"  empty: unknown[];\n" +
		"  tags: {\n" +
		"    label: string;\n" +
		"  }[];\n" +
		"}"
	assert.Equal(t, expected, generate(t, jsonStr, "User", DefaultOptions()))
}

func TestGenerate_UndefinedField(t *testing.T) {
	obj := models.NewJSONObject()
	obj.Set("a", nil)
	obj.Set("b", models.Undefined)

	out, err := NewGenerator().Generate(obj, "Root", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "interface Root {\n  a: null;\n  b: undefined;\n}", out)
}

func TestGenerate_IdenticalNestedShapes(t *testing.T) {
	got := generate(t, `{"a": {"k": 1}, "b": {"k": 1}}`, "Root", DefaultOptions())
	expected := "interface Root {\n" +
		"  a: {\n" +
		"    k: number;\n" +
		"  };\n" +
		"  b: {\n" +
		"    k: number;\n" +
		"  };\n" +
		"}"
	assert.Equal(t, expected, got)
}

func TestGenerate_IndentWidth(t *testing.T) {
	opts := DefaultOptions()
	opts.IndentWidth = 4

	got := generate(t, `{"a": {"b": 1}}`, "Root", opts)
	assert.Equal(t, "interface Root {\n    a: {\n        b: number;\n    };\n}", got)
}

func TestGenerate_DetectDates(t *testing.T) {
	opts := DefaultOptions()
	opts.DetectDates = true

	got := generate(t, `{"created_at": "2023-05-20T14:56:23Z", "label": "x"}`, "Event", opts)
	assert.Equal(t, "interface Event {\n  created_at: Date;\n  label: string;\n}", got)
}

func TestGenerate_Unwrap(t *testing.T) {
	opts := DefaultOptions()
	opts.UnwrapEnvelope = true

	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{
			name:     "data array",
			json:     `{"data": [{"x": true}]}`,
			expected: "interface Root {\n  x: boolean;\n}",
		},
		{
			name:     "data object",
			json:     `{"data": {"x": true}, "meta": {}}`,
			expected: "interface Root {\n  x: boolean;\n}",
		},
		{
			name:     "root array",
			json:     `[{"x": 1}, {"x": 2}]`,
			expected: "interface Root {\n  x: number;\n}",
		},
		{
			name:     "no envelope",
			json:     `{"x": 1}`,
			expected: "interface Root {\n  x: number;\n}",
		},
		{
			name:     "applied once",
			json:     `{"data": {"data": {"x": 1}}}`,
			expected: "interface Root {\n  data: {\n    x: number;\n  };\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generate(t, tt.json, "Root", opts))
		})
	}
}

func TestGenerate_UnwrapDisabledLeavesDataKey(t *testing.T) {
	got := generate(t, `{"data": [{"x": true}]}`, "Root", DefaultOptions())
	assert.Equal(t, "interface Root {\n  data: {\n    x: boolean;\n  }[];\n}", got)
}

func TestGenerate_Errors(t *testing.T) {
	unwrap := DefaultOptions()
	unwrap.UnwrapEnvelope = true

	tests := []struct {
		name   string
		value  models.JSONValue
		iface  string
		opts   Options
		target error
	}{
		{"empty name", parse(t, `{}`), "", DefaultOptions(), errors.ErrInvalidInput},
		{"blank name", parse(t, `{}`), "   ", DefaultOptions(), errors.ErrInvalidInput},
		{"zero indent", parse(t, `{}`), "Root", Options{}, errors.ErrInvalidInput},
		{"string root", "hello", "Root", DefaultOptions(), errors.ErrInvalidInput},
		{"null root", nil, "Root", DefaultOptions(), errors.ErrInvalidInput},
		{"number root", parse(t, `1`), "Root", DefaultOptions(), errors.ErrInvalidInput},
		{"array root without unwrap", parse(t, `[{"x": 1}]`), "Root", DefaultOptions(), errors.ErrUnsupportedRootShape},
		{"empty array with unwrap", parse(t, `[]`), "Root", unwrap, errors.ErrUnsupportedRootShape},
		{"array of primitives with unwrap", parse(t, `[1, 2]`), "Root", unwrap, errors.ErrUnsupportedRootShape},
		{"data is a string", parse(t, `{"data": "x"}`), "Root", unwrap, errors.ErrUnsupportedRootShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewGenerator().Generate(tt.value, tt.iface, tt.opts)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, stderrors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	value := parse(t, `{"a": {"k": 1}, "b": [{"k": 1}], "c": {"k": 1}}`)
	g := NewGenerator()

	first, err := g.Generate(value, "Root", DefaultOptions())
	require.NoError(t, err)
	second, err := g.Generate(value, "Root", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_ConcurrentCalls(t *testing.T) {
	value := parse(t, `{"user": {"id": 1, "tags": ["a"]}, "items": [{"id": 1}, {"id": 2}]}`)
	g := NewGenerator()

	want, err := g.Generate(value, "Root", DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = g.Generate(value, "Root", DefaultOptions())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	value := parse(t, `{"data": [{"x": 1}]}`)
	opts := DefaultOptions()
	opts.UnwrapEnvelope = true

	_, err := NewGenerator().Generate(value, "Root", opts)
	require.NoError(t, err)

	obj := value.(*models.JSONObject)
	data, ok := obj.Get("data")
	require.True(t, ok)
	assert.Len(t, data, 1)
}
