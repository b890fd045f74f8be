// Package api provides a RESTful HTTP API server for the document engine.
//
// It is the integration surface for external systems: templates and
// documents are managed over JSON, documents are filled blank by blank or
// auto-filled from an instruction record, and finished documents are
// downloaded as DOCX or plain text. All operations route through the
// unified command executor so HTTP, CLI, and TUI behave identically.
//
// Middleware stack: request logging, CORS, JSON content type, and panic
// recovery. OpenAPI documentation is served at /api/docs with the raw
// specification at /api/openapi.json.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/grovemead/leasecraft/internal/commands"
	"github.com/grovemead/leasecraft/internal/errors"
	"github.com/grovemead/leasecraft/internal/service"
)

// APIServer provides an HTTP API with middleware support
type APIServer struct {
	service      *service.Service
	executor     *commands.CommandExecutor
	errorHandler *errors.HTTPErrorHandler
	port         int
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &APIServer{
		service:      svc,
		executor:     commands.NewCommandExecutor(svc),
		errorHandler: errors.NewHTTPErrorHandler(true), // Include details in responses
		port:         port,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/v1/templates", s.withMiddleware(s.handleTemplates))
	mux.HandleFunc("/api/v1/templates/", s.withMiddleware(s.handleTemplatesWithID))
	mux.HandleFunc("/api/v1/documents", s.withMiddleware(s.handleDocuments))
	mux.HandleFunc("/api/v1/documents/", s.withMiddleware(s.handleDocumentsWithID))
	mux.HandleFunc("/api/v1/doc-types", s.withMiddleware(s.handleDocTypes))
	mux.HandleFunc("/api/v1/import", s.withMiddleware(s.handleImport))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	// OpenAPI documentation
	mux.HandleFunc("/api/docs", s.withMiddleware(s.handleOpenAPI))
	mux.HandleFunc("/api/openapi.json", s.withMiddleware(s.handleOpenAPISpec))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	log.Printf("OpenAPI documentation: http://localhost:%d/api/docs", s.port)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		duration := time.Since(start)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, duration)
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics and errors
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				appErr := errors.InternalError("Internal server error")
				s.errorHandler.WriteHTTPError(w, appErr)
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		// Fallback to compact JSON if marshaling fails
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Write(jsonData)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

// execute runs a command and writes the standardized response. It maps a
// failed CommandResult back to the AppError the handler would have seen,
// so the HTTP status code matches the error's category.
func (s *APIServer) execute(w http.ResponseWriter, r *http.Request, commandName string, params map[string]interface{}, statusCode int) {
	result, err := s.executor.Execute(r.Context(), commandName, params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !result.Success {
		if result.Error != nil {
			s.writeError(w, &errors.AppError{
				Code:     errors.ErrorCode(result.Error.Code),
				Message:  result.Error.Message,
				Details:  result.Error.Details,
				Category: errors.ErrorCategory(result.Error.Category),
				Severity: errors.ErrorSeverity(result.Error.Severity),
			})
		} else {
			s.writeError(w, errors.InternalError("Command failed"))
		}
		return
	}

	s.writeResponse(w, result.Data, result.Message, statusCode)
}

// decodeBody parses a JSON request body into a parameter map
func decodeBody(r *http.Request) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	if r.Body == nil {
		return params, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && err.Error() != "EOF" {
		return nil, errors.ValidationError("Invalid JSON in request body")
	}
	return params, nil
}

// handleTemplates handles /api/v1/templates
func (s *APIServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		params := make(map[string]interface{})
		if q := r.URL.Query().Get("q"); q != "" {
			params["query"] = q
		}
		if tag := r.URL.Query().Get("tag"); tag != "" {
			params["tag"] = tag
		}
		if docType := r.URL.Query().Get("doc_type"); docType != "" {
			params["doc_type"] = docType
		}
		s.execute(w, r, "list-templates", params, http.StatusOK)
	case "POST":
		params, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.execute(w, r, "create-template", params, http.StatusCreated)
	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleTemplatesWithID handles /api/v1/templates/{id} and
// /api/v1/templates/{id}/render
func (s *APIServer) handleTemplatesWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	if path == "" {
		s.writeError(w, errors.ValidationError("Template ID is required"))
		return
	}

	id := path
	var action string
	if idx := strings.Index(path, "/"); idx != -1 {
		id = path[:idx]
		action = path[idx+1:]
	}

	switch {
	case action == "" && r.Method == "GET":
		s.execute(w, r, "get-template", map[string]interface{}{"id": id}, http.StatusOK)
	case action == "" && r.Method == "DELETE":
		s.execute(w, r, "delete-template", map[string]interface{}{"id": id}, http.StatusOK)
	case action == "render" && r.Method == "POST":
		body, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		params := map[string]interface{}{"id": id}
		if vars, ok := body["variables"]; ok {
			params["variables"] = vars
		}
		s.execute(w, r, "render", params, http.StatusOK)
	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleDocuments handles /api/v1/documents
func (s *APIServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		params := make(map[string]interface{})
		if archived := r.URL.Query().Get("archived"); archived == "true" {
			params["archived"] = true
		}
		s.execute(w, r, "list-documents", params, http.StatusOK)
	case "POST":
		params, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.execute(w, r, "create-document", params, http.StatusCreated)
	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleDocumentsWithID routes /api/v1/documents/{id} and its
// sub-resources (blanks, fill, autofill, placeholders, completion,
// preview, archive, generate).
func (s *APIServer) handleDocumentsWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/documents/")
	if path == "" {
		s.writeError(w, errors.ValidationError("Document ID is required"))
		return
	}

	id := path
	var action string
	if idx := strings.Index(path, "/"); idx != -1 {
		id = path[:idx]
		action = path[idx+1:]
	}

	idParam := map[string]interface{}{"id": id}

	switch {
	case action == "" && r.Method == "GET":
		s.execute(w, r, "get-document", idParam, http.StatusOK)

	case action == "" && r.Method == "DELETE":
		s.execute(w, r, "delete-document", idParam, http.StatusOK)

	case action == "blanks" && r.Method == "GET":
		s.execute(w, r, "detect", idParam, http.StatusOK)

	case action == "blanks" && r.Method == "POST":
		body, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		body["id"] = id
		s.execute(w, r, "insert-blank", body, http.StatusCreated)

	case action == "fill" && r.Method == "POST":
		body, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		body["id"] = id
		s.execute(w, r, "fill", body, http.StatusOK)

	case action == "autofill" && r.Method == "POST":
		body, err := decodeBody(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		body["id"] = id
		s.execute(w, r, "autofill", body, http.StatusOK)

	case action == "placeholders" && r.Method == "GET":
		s.execute(w, r, "placeholders", idParam, http.StatusOK)

	case action == "completion" && r.Method == "GET":
		s.execute(w, r, "completion", idParam, http.StatusOK)

	case action == "preview" && r.Method == "GET":
		s.execute(w, r, "preview", idParam, http.StatusOK)

	case action == "archive" && r.Method == "POST":
		s.execute(w, r, "archive", idParam, http.StatusOK)

	case action == "generate" && r.Method == "GET":
		s.handleGenerate(w, r, id)

	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleGenerate streams the generated file back as a download instead of
// wrapping it in the JSON envelope.
func (s *APIServer) handleGenerate(w http.ResponseWriter, r *http.Request, id string) {
	params := map[string]interface{}{"id": id}
	if output := r.URL.Query().Get("output"); output != "" {
		params["output"] = output
	}
	if force := r.URL.Query().Get("force"); force == "true" {
		params["force"] = true
	}

	result, err := s.executor.Execute(r.Context(), "generate", params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !result.Success {
		if result.Error != nil {
			s.writeError(w, &errors.AppError{
				Code:     errors.ErrorCode(result.Error.Code),
				Message:  result.Error.Message,
				Details:  result.Error.Details,
				Category: errors.ErrorCategory(result.Error.Category),
				Severity: errors.ErrorSeverity(result.Error.Severity),
			})
		} else {
			s.writeError(w, errors.InternalError("Command failed"))
		}
		return
	}

	file, ok := result.Data.(*commands.GeneratedFile)
	if !ok {
		s.writeError(w, errors.InternalError("Unexpected generate result"))
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	if strings.HasSuffix(file.Filename, ".txt") {
		contentType = "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Bytes)
}

// handleDocTypes handles GET /api/v1/doc-types
func (s *APIServer) handleDocTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	s.execute(w, r, "doc-types", nil, http.StatusOK)
}

// handleImport handles POST /api/v1/import
func (s *APIServer) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	params, err := decodeBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.execute(w, r, "import", params, http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	s.execute(w, r, "health", nil, http.StatusOK)
}
