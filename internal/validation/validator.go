// Package validation provides centralized input validation and sanitization.
//
// All user input crosses this layer before it reaches business logic: CLI
// arguments, HTTP request bodies, and TUI form values are converted to a
// parameter map and checked against a named schema. Valid parameters come
// back type-converted; invalid ones produce a ValidationResult that
// converts to the standard AppError format.
//
// Built-in schemas cover every command the system exposes (list_templates,
// create_document, fill_blank, autofill_document, generate_document, ...).
// Interfaces register additional schemas through RegisterSchema when they
// grow new operations.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/grovemead/leasecraft/internal/errors"
)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name      string
	Required  bool
	Type      string
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Options   []string
	Custom    func(interface{}) error
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Errors   []ValidationError      `json:"errors,omitempty"`
	Warnings []ValidationWarning    `json:"warnings,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationWarning represents a field validation warning
type ValidationWarning struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Schema represents a validation schema
type Schema struct {
	Name   string
	Fields map[string]FieldValidator
	Rules  []func(map[string]interface{}) error
}

// Validator provides centralized validation functionality
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := &Validator{
		schemas: make(map[string]*Schema),
	}

	v.registerBuiltinSchemas()

	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]interface{}) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
		Data:     make(map[string]interface{}),
	}

	// Validate individual fields
	for fieldName, validator := range schema.Fields {
		v.validateField(fieldName, validator, data, result)
	}

	// Apply schema-level rules
	for _, rule := range schema.Rules {
		if err := rule(data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "schema",
				Code:    "SCHEMA_RULE_VIOLATION",
				Message: err.Error(),
			})
		}
	}

	return result
}

// validateField validates a single field
func (v *Validator) validateField(fieldName string, validator FieldValidator, data map[string]interface{}, result *ValidationResult) {
	value, exists := data[fieldName]

	// Check required fields
	if validator.Required && (!exists || value == nil || value == "") {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "REQUIRED_FIELD_MISSING",
			Message: fmt.Sprintf("Field '%s' is required", fieldName),
		})
		return
	}

	// Skip validation if field is not present and not required
	if !exists || value == nil {
		return
	}

	// Type validation and conversion
	convertedValue, err := v.validateAndConvertType(fieldName, validator.Type, value)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "INVALID_TYPE",
			Message: err.Error(),
			Value:   value,
		})
		return
	}

	// Store converted value
	result.Data[fieldName] = convertedValue

	// Validate string-specific rules
	if validator.Type == "string" {
		strValue, ok := convertedValue.(string)
		if ok {
			if validator.MinLength > 0 && len(strValue) < validator.MinLength {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   fieldName,
					Code:    "MIN_LENGTH_VIOLATION",
					Message: fmt.Sprintf("Field '%s' must be at least %d characters long", fieldName, validator.MinLength),
					Value:   strValue,
				})
			}

			if validator.MaxLength > 0 && len(strValue) > validator.MaxLength {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   fieldName,
					Code:    "MAX_LENGTH_VIOLATION",
					Message: fmt.Sprintf("Field '%s' must be at most %d characters long", fieldName, validator.MaxLength),
					Value:   strValue,
				})
			}

			if validator.Pattern != nil && !validator.Pattern.MatchString(strValue) {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   fieldName,
					Code:    "PATTERN_MISMATCH",
					Message: fmt.Sprintf("Field '%s' does not match required pattern", fieldName),
					Value:   strValue,
				})
			}

			if len(validator.Options) > 0 {
				validOption := false
				for _, option := range validator.Options {
					if strValue == option {
						validOption = true
						break
					}
				}
				if !validOption {
					result.Valid = false
					result.Errors = append(result.Errors, ValidationError{
						Field:   fieldName,
						Code:    "INVALID_OPTION",
						Message: fmt.Sprintf("Field '%s' must be one of: %s", fieldName, strings.Join(validator.Options, ", ")),
						Value:   strValue,
					})
				}
			}
		}
	}

	// Custom validation
	if validator.Custom != nil {
		if err := validator.Custom(convertedValue); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldName,
				Code:    "CUSTOM_VALIDATION_FAILED",
				Message: fmt.Sprintf("Field '%s': %s", fieldName, err.Error()),
				Value:   convertedValue,
			})
		}
	}
}

// validateAndConvertType validates and converts value to the specified type
func (v *Validator) validateAndConvertType(fieldName, expectedType string, value interface{}) (interface{}, error) {
	switch expectedType {
	case "string":
		if str, ok := value.(string); ok {
			return str, nil
		}
		return fmt.Sprintf("%v", value), nil

	case "int":
		switch val := value.(type) {
		case int:
			return val, nil
		case float64:
			return int(val), nil
		case string:
			if intVal, err := strconv.Atoi(val); err == nil {
				return intVal, nil
			}
		}
		return nil, fmt.Errorf("field '%s' must be an integer", fieldName)

	case "bool":
		switch val := value.(type) {
		case bool:
			return val, nil
		case string:
			if boolVal, err := strconv.ParseBool(val); err == nil {
				return boolVal, nil
			}
		}
		return nil, fmt.Errorf("field '%s' must be a boolean", fieldName)

	case "array":
		switch val := value.(type) {
		case []interface{}:
			return val, nil
		case []string:
			result := make([]interface{}, len(val))
			for i, v := range val {
				result[i] = v
			}
			return result, nil
		case string:
			// Handle comma-separated values
			if val != "" {
				parts := strings.Split(val, ",")
				result := make([]interface{}, len(parts))
				for i, part := range parts {
					result[i] = strings.TrimSpace(part)
				}
				return result, nil
			}
			return []interface{}{}, nil
		}
		return nil, fmt.Errorf("field '%s' must be an array", fieldName)

	case "object":
		if obj, ok := value.(map[string]interface{}); ok {
			return obj, nil
		}
		return nil, fmt.Errorf("field '%s' must be an object", fieldName)

	default:
		return value, nil
	}
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// registerBuiltinSchemas registers common validation schemas
func (v *Validator) registerBuiltinSchemas() {
	v.RegisterSchema(&Schema{
		Name: "list_templates",
		Fields: map[string]FieldValidator{
			"query": {
				Name:      "query",
				Type:      "string",
				MaxLength: 1000,
			},
			"tag": {
				Name:      "tag",
				Type:      "string",
				MaxLength: 100,
				Pattern:   identifierPattern,
			},
			"doc_type": {
				Name:      "doc_type",
				Type:      "string",
				MaxLength: 100,
				Pattern:   identifierPattern,
			},
			"format": {
				Name:    "format",
				Type:    "string",
				Options: []string{"json", "text", "table", "ids"},
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "get_template",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"with_content": {
				Name: "with_content",
				Type: "bool",
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "create_template",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"name": {
				Name:      "name",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 500,
			},
			"summary": {
				Name:      "summary",
				Type:      "string",
				MaxLength: 2000,
			},
			"doc_type": {
				Name:      "doc_type",
				Type:      "string",
				MaxLength: 100,
				Pattern:   identifierPattern,
			},
			"content": {
				Name:      "content",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 1000000,
			},
			"tags": {
				Name: "tags",
				Type: "array",
			},
		},
		Rules: []func(map[string]interface{}) error{
			func(data map[string]interface{}) error {
				if tags, exists := data["tags"]; exists {
					if tagArray, ok := tags.([]interface{}); ok {
						for i, tag := range tagArray {
							tagStr, ok := tag.(string)
							if !ok {
								return fmt.Errorf("tag at position %d is not a string", i)
							}
							if len(tagStr) > 50 {
								return fmt.Errorf("tag at position %d is too long (max 50 characters)", i)
							}
							if !identifierPattern.MatchString(tagStr) {
								return fmt.Errorf("tag at position %d contains invalid characters", i)
							}
						}
					}
				}
				return nil
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "list_documents",
		Fields: map[string]FieldValidator{
			"archived": {
				Name: "archived",
				Type: "bool",
			},
			"format": {
				Name:    "format",
				Type:    "string",
				Options: []string{"json", "text", "table", "ids"},
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "get_document",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "create_document",
		Fields: map[string]FieldValidator{
			"template_id": {
				Name:      "template_id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"name": {
				Name:      "name",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 500,
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "fill_blank",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"blank_id": {
				Name:      "blank_id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 100,
			},
			"content": {
				Name:      "content",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 10000,
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "insert_blank",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"position": {
				Name:     "position",
				Type:     "int",
				Required: true,
				Custom: func(value interface{}) error {
					pos, ok := value.(int)
					if !ok {
						return fmt.Errorf("position must be an integer")
					}
					if pos < 0 {
						return fmt.Errorf("position must not be negative")
					}
					return nil
				},
			},
			"length": {
				Name: "length",
				Type: "int",
				Custom: func(value interface{}) error {
					length, ok := value.(int)
					if !ok {
						return fmt.Errorf("length must be an integer")
					}
					if length < 1 {
						return fmt.Errorf("length must be at least 1")
					}
					return nil
				},
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "autofill_document",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"landlord_name": {
				Name:      "landlord_name",
				Type:      "string",
				MaxLength: 500,
			},
			"tenant_name": {
				Name:      "tenant_name",
				Type:      "string",
				MaxLength: 500,
			},
			"property_reference": {
				Name:      "property_reference",
				Type:      "string",
				MaxLength: 200,
			},
			"property_address": {
				Name:      "property_address",
				Type:      "string",
				MaxLength: 1000,
			},
			"postal_address": {
				Name:      "postal_address",
				Type:      "string",
				MaxLength: 1000,
			},
			"site_description": {
				Name:      "site_description",
				Type:      "string",
				MaxLength: 2000,
			},
			"commencement_date": {
				Name: "commencement_date",
				Type: "string",
				Custom: func(value interface{}) error {
					str, ok := value.(string)
					if !ok {
						return fmt.Errorf("commencement_date must be a string")
					}
					if str == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", str); err != nil {
						return fmt.Errorf("commencement_date must be in YYYY-MM-DD format")
					}
					return nil
				},
			},
			"term_years": {
				Name: "term_years",
				Type: "int",
				Custom: func(value interface{}) error {
					years, ok := value.(int)
					if !ok {
						return fmt.Errorf("term_years must be an integer")
					}
					if years < 0 {
						return fmt.Errorf("term_years must not be negative")
					}
					return nil
				},
			},
			"rent_amount": {
				Name:      "rent_amount",
				Type:      "string",
				MaxLength: 100,
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "render_template",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"variables": {
				Name: "variables",
				Type: "object",
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "generate_document",
		Fields: map[string]FieldValidator{
			"id": {
				Name:      "id",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 200,
				Pattern:   identifierPattern,
			},
			"output": {
				Name:    "output",
				Type:    "string",
				Options: []string{"docx", "text"},
			},
			"force": {
				Name: "force",
				Type: "bool",
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "import_templates",
		Fields: map[string]FieldValidator{
			"path": {
				Name:      "path",
				Type:      "string",
				Required:  true,
				MinLength: 1,
				MaxLength: 4096,
			},
			"doc_type": {
				Name:      "doc_type",
				Type:      "string",
				MaxLength: 100,
				Pattern:   identifierPattern,
			},
			"dry_run": {
				Name: "dry_run",
				Type: "bool",
			},
		},
	})
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	// Use the first error as the primary error
	firstError := result.Errors[0]
	appErr := errors.ValidationError(firstError.Message)

	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}

	appErr.WithDetails(strings.Join(details, "; "))

	appErr.WithContext("validation_errors", result.Errors)
	if len(result.Warnings) > 0 {
		appErr.WithContext("validation_warnings", result.Warnings)
	}

	return appErr
}

// GetValidatedData returns the validated and converted data
func (result *ValidationResult) GetValidatedData() map[string]interface{} {
	if !result.Valid {
		return nil
	}
	return result.Data
}
