package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format identifies a model document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// validate is a singleton validator instance for the schema-level field
// constraints.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads a model document from disk and constructs the validated
// ProcessModel. The encoding is chosen by file extension: .json for JSON,
// .yaml or .yml for YAML.
func Load(path string) (*ProcessModel, error) {
	format, err := formatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	return Parse(data, format)
}

// Parse decodes a model document and constructs the validated ProcessModel.
func Parse(data []byte, format Format) (*ProcessModel, error) {
	var m ProcessModel

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse model document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse model document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported model format %q", format)
	}

	return New(m.Name, m.Description, m.Activities, m.Transitions)
}

// New assembles a ProcessModel and runs the full validation gate: field
// constraints first, then the routing invariant. A model that fails either is
// never returned, so holding a *ProcessModel means holding a consistent one.
func New(name, description string, activities []Activity, transitions []Transition) (*ProcessModel, error) {
	m := &ProcessModel{
		Name:        name,
		Description: description,
		Activities:  activities,
		Transitions: transitions,
	}

	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("model %q: %w", name, formatSchemaError(err))
	}

	warnings, err := validateRouting(m)
	if err != nil {
		return nil, err
	}
	m.warnings = warnings

	return m, nil
}

// formatForPath maps a file extension to a document format.
func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported model file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// formatSchemaError converts validator errors to a more user-friendly format.
func formatSchemaError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first field error; field constraints are local fixes, unlike
	// the routing violations which are collected wholesale.
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "ProcessModel.")

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), fmt.Sprintf("%v", e.Value()))
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, e.Param())
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "min":
			return fmt.Errorf("%s: needs at least %s entry(ies)", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
