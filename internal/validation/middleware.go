// HTTP request validation middleware. Bridges HTTP-specific request
// parsing (query params, path segments, JSON and form bodies) with the
// generic schema validator so API handlers only ever see validated data.
package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/grovemead/leasecraft/internal/errors"
)

// RequestValidator provides middleware for HTTP request validation
type RequestValidator struct {
	validator *Validator
}

// NewRequestValidator creates a new request validator middleware
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validator: NewValidator(),
	}
}

// ValidateRequest middleware validates HTTP requests based on schema
func (rv *RequestValidator) ValidateRequest(schemaName string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			data, err := rv.extractRequestData(r)
			if err != nil {
				rv.writeValidationError(w, errors.ValidationError(err.Error()))
				return
			}

			result := rv.validator.Validate(schemaName, data)
			if !result.Valid {
				rv.writeValidationError(w, result.ToAppError())
				return
			}

			next(w, r)
		}
	}
}

// extractRequestData extracts data from HTTP request based on method and content type
func (rv *RequestValidator) extractRequestData(r *http.Request) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	// Extract query parameters
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			data[key] = values[0]
		} else if len(values) > 1 {
			data[key] = values
		}
	}

	// Extract path parameters (for REST-style URLs)
	if pathParams := rv.extractPathParams(r); len(pathParams) > 0 {
		for key, value := range pathParams {
			data[key] = value
		}
	}

	// Extract body data for POST/PUT requests
	if r.Method == "POST" || r.Method == "PUT" {
		contentType := r.Header.Get("Content-Type")

		if strings.Contains(contentType, "application/json") {
			bodyData, err := rv.extractJSONBody(r)
			if err != nil {
				return nil, err
			}
			for key, value := range bodyData {
				data[key] = value
			}
		} else if strings.Contains(contentType, "application/x-www-form-urlencoded") {
			formData, err := rv.extractFormBody(r)
			if err != nil {
				return nil, err
			}
			for key, value := range formData {
				data[key] = value
			}
		}
	}

	return data, nil
}

// extractPathParams extracts parameters from URL path
func (rv *RequestValidator) extractPathParams(r *http.Request) map[string]string {
	params := make(map[string]string)

	path := r.URL.Path

	// For /api/v1/templates/{id} and /api/v1/documents/{id} style URLs
	for _, prefix := range []string{"/api/v1/templates/", "/api/v1/documents/"} {
		if strings.HasPrefix(path, prefix) && path != prefix {
			id := strings.TrimPrefix(path, prefix)
			// Remove any trailing path segments (e.g. /documents/{id}/fill)
			if idx := strings.Index(id, "/"); idx != -1 {
				id = id[:idx]
			}
			if id != "" {
				params["id"] = id
			}
		}
	}

	return params
}

// extractJSONBody extracts data from JSON request body
func (rv *RequestValidator) extractJSONBody(r *http.Request) (map[string]interface{}, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.ValidationError("Failed to read request body")
	}

	if len(body) == 0 {
		return make(map[string]interface{}), nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.ValidationError("Invalid JSON in request body")
	}

	return data, nil
}

// extractFormBody extracts data from form-encoded request body
func (rv *RequestValidator) extractFormBody(r *http.Request) (map[string]interface{}, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.ValidationError("Failed to parse form data")
	}

	data := make(map[string]interface{})
	for key, values := range r.PostForm {
		if len(values) == 1 {
			data[key] = values[0]
		} else if len(values) > 1 {
			data[key] = values
		}
	}

	return data, nil
}

// writeValidationError writes a validation error response
func (rv *RequestValidator) writeValidationError(w http.ResponseWriter, err *errors.AppError) {
	errorHandler := errors.NewHTTPErrorHandler(true)
	errorHandler.WriteHTTPError(w, err)
}

// Common validation helper functions

// ValidateQueryParams validates common query parameters
func ValidateQueryParams(values url.Values) map[string]interface{} {
	params := make(map[string]interface{})

	if q := values.Get("q"); q != "" {
		params["query"] = q
	}

	if tag := values.Get("tag"); tag != "" {
		params["tag"] = tag
	}

	if docType := values.Get("doc_type"); docType != "" {
		params["doc_type"] = docType
	}

	if format := values.Get("format"); format != "" {
		params["format"] = format
	}

	if output := values.Get("output"); output != "" {
		params["output"] = output
	}

	if archived := values.Get("archived"); archived != "" {
		if archivedBool, err := strconv.ParseBool(archived); err == nil {
			params["archived"] = archivedBool
		}
	}

	if force := values.Get("force"); force != "" {
		if forceBool, err := strconv.ParseBool(force); err == nil {
			params["force"] = forceBool
		}
	}

	if withContent := values.Get("with_content"); withContent != "" {
		if withContentBool, err := strconv.ParseBool(withContent); err == nil {
			params["with_content"] = withContentBool
		}
	}

	return params
}

// SanitizeString sanitizes string input by removing dangerous characters
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	cleaned := strings.ReplaceAll(input, "\x00", "")

	// Remove other control characters but preserve newlines and tabs
	var result strings.Builder
	for _, r := range cleaned {
		if r == '\n' || r == '\t' || r == '\r' || r >= 32 {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateIdentifier validates that a string is a valid identifier
func ValidateIdentifier(id string) error {
	if id == "" {
		return errors.ValidationError("Identifier cannot be empty")
	}

	if len(id) > 200 {
		return errors.ValidationError("Identifier too long (max 200 characters)")
	}

	for _, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_') {
			return errors.ValidationError("Identifier contains invalid characters (only alphanumeric, hyphens, and underscores allowed)")
		}
	}

	return nil
}

// ValidateTag validates that a string is a valid tag
func ValidateTag(tag string) error {
	if tag == "" {
		return errors.ValidationError("Tag cannot be empty")
	}

	if len(tag) > 50 {
		return errors.ValidationError("Tag too long (max 50 characters)")
	}

	return ValidateIdentifier(tag)
}

// ValidateTags validates an array of tags
func ValidateTags(tags []interface{}) error {
	if len(tags) > 20 {
		return errors.ValidationError("Too many tags (max 20)")
	}

	for i, tag := range tags {
		tagStr, ok := tag.(string)
		if !ok {
			return errors.ValidationError(fmt.Sprintf("Tag at position %d is not a string", i))
		}

		if err := ValidateTag(tagStr); err != nil {
			return errors.ValidationError(fmt.Sprintf("Tag at position %d: %s", i, err.Error()))
		}
	}

	return nil
}

// GetValidator returns the underlying validator instance
func (rv *RequestValidator) GetValidator() *Validator {
	return rv.validator
}
