// Package selector picks a sub-value out of a parsed JSON document with a jq
// expression before interface generation.
package selector

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// Selector evaluates one jq expression.
type Selector struct {
	expr  string
	code *gojq.Code // nil for the identity expression
}

// New compiles expr. An empty expression or "." selects the whole document.
func New(expr string) (*Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "." {
		return &Selector{expr: "."}, nil
	}

	// Evaluating path(expr) yields locations rather than values, so the
	// ordered tree can be walked without losing key order.
	query, err := gojq.Parse("path(" + expr + ")")
	if err != nil {
		return nil, errors.NewSelectError(fmt.Sprintf("invalid expression '%s'", expr), err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, errors.NewSelectError(fmt.Sprintf("failed to compile '%s'", expr), err)
	}
	return &Selector{expr: expr, code: code}, nil
}

// Select is a convenience wrapper compiling expr and applying it to value.
func Select(value models.JSONValue, expr string) (models.JSONValue, error) {
	s, err := New(expr)
	if err != nil {
		return nil, err
	}
	return s.Apply(value)
}

// Expr returns the expression this selector evaluates.
func (s *Selector) Expr() string {
	return s.expr
}

// Apply returns the first value addressed by the expression.
func (s *Selector) Apply(value models.JSONValue) (models.JSONValue, error) {
	if s.code == nil {
		return value, nil
	}

	plain, err := toPlain(value)
	if err != nil {
		return nil, errors.NewSelectError("failed to prepare document for selection", err)
	}

	iter := s.code.Run(plain)
	result, ok := iter.Next()
	if !ok {
		return nil, errors.NewSelectError(fmt.Sprintf("'%s' matched nothing", s.expr), errors.ErrNoSelection)
	}
	if err, isErr := result.(error); isErr {
		return nil, errors.NewSelectError(fmt.Sprintf("evaluating '%s'", s.expr), err)
	}

	path, ok := result.([]any)
	if !ok {
		return nil, errors.NewSelectError(fmt.Sprintf("'%s' did not produce a path", s.expr), errors.ErrNoSelection)
	}

	selected, err := walk(value, path)
	if err != nil {
		return nil, errors.NewSelectError(fmt.Sprintf("'%s'", s.expr), err)
	}
	slog.Debug("selected sub-value", slog.String("expr", s.expr), slog.Any("path", path))
	return selected, nil
}

// toPlain converts the ordered tree into the generic values gojq accepts.
func toPlain(value models.JSONValue) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

// walk follows path through the ordered tree. A location that does not exist
// yields null, matching jq's view of missing keys.
func walk(value models.JSONValue, path []any) (models.JSONValue, error) {
	current := value
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := current.(*models.JSONObject)
			if !ok {
				return nil, fmt.Errorf("cannot index %T with %q: %w", current, key, errors.ErrNoSelection)
			}
			next, found := obj.Get(key)
			if !found {
				return nil, nil
			}
			current = next
		case int, float64:
			arr, ok := current.(models.JSONArray)
			if !ok {
				return nil, fmt.Errorf("cannot index %T with %v: %w", current, key, errors.ErrNoSelection)
			}
			idx := toIndex(key)
			if idx < 0 {
				idx += len(arr)
			}
			if idx < 0 || idx >= len(arr) {
				return nil, nil
			}
			current = arr[idx]
		default:
			return nil, fmt.Errorf("unsupported path component %v: %w", step, errors.ErrNoSelection)
		}
	}
	return current, nil
}

func toIndex(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return -1
	}
}
