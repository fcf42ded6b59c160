package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/buger/jsonparser"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors" // Custom errors package
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation.
// Object keys keep their document order; numbers are kept as json.Number.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON document held in data.
func ParseBytes(data []byte) (models.IntermediateRepresentation, error) {
	if err := validate(data); err != nil {
		return models.IntermediateRepresentation{}, err
	}

	rootValue, err := buildValue(bytes.TrimSpace(data))
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError("failed to decode JSON", err)
	}

	ir := models.IntermediateRepresentation{
		Root: rootValue,
	}
	_, ir.RootIsArray = rootValue.(models.JSONArray)
	return ir, nil
}

// validate runs the document through encoding/json so syntax errors carry an
// offset and trailing values are rejected before the ordered walk.
func validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return errors.NewParsingError("JSON syntax error: unexpected EOF", errors.ErrInvalidJSON)
		}
		return errors.NewParsingError("failed to decode JSON", err)
	}

	// Check for trailing data after the first JSON value.
	if decoder.More() {
		return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return errors.NewParsingError("unexpected data after the root JSON value", errors.ErrInvalidJSON)
		}
		return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}
	return nil
}

// buildValue converts one raw JSON value into the model types.
func buildValue(raw []byte) (models.JSONValue, error) {
	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, err
	}
	return convert(value, dataType)
}

func convert(value []byte, dataType jsonparser.ValueType) (models.JSONValue, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Array:
		return convertArray(value)
	case jsonparser.Object:
		return convertObject(value)
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", value)
	}
}

func convertArray(value []byte) (models.JSONValue, error) {
	arr := models.JSONArray{}
	var convErr error
	_, err := jsonparser.ArrayEach(value, func(element []byte, dataType jsonparser.ValueType, _ int, err error) {
		if convErr != nil {
			return
		}
		if err != nil {
			convErr = err
			return
		}
		v, err := convert(element, dataType)
		if err != nil {
			convErr = err
			return
		}
		arr = append(arr, v)
	})
	if err != nil {
		return nil, err
	}
	if convErr != nil {
		return nil, convErr
	}
	return arr, nil
}

// convertObject keeps keys in document order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func convertObject(value []byte) (models.JSONValue, error) {
	obj := models.NewJSONObject()
	err := jsonparser.ObjectEach(value, func(key []byte, element []byte, dataType jsonparser.ValueType, _ int) error {
		// keys arrive already unescaped
		k := string(key)
		v, err := convert(element, dataType)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		obj.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("failed to open file '%s': not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
