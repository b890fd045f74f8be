// OpenAPI 3.0 specification and interactive documentation for the API.
// The spec is built in code so it cannot drift from the route table in
// server.go without the discrepancy being visible in one file.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/grovemead/leasecraft/internal/errors"
)

// handleOpenAPI serves the interactive documentation interface
func (s *APIServer) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	html := `<!DOCTYPE html>
<html>
<head>
    <title>Leasecraft API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: '/api/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handleOpenAPISpec serves the OpenAPI JSON specification
func (s *APIServer) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	spec := getOpenAPISpec()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(spec)
}

// getOpenAPISpec returns the OpenAPI 3.0 specification
func getOpenAPISpec() map[string]interface{} {
	idParam := map[string]interface{}{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]interface{}{"type": "string"},
	}

	apiResponse := map[string]interface{}{
		"$ref": "#/components/schemas/APIResponse",
	}

	okResponse := map[string]interface{}{
		"200": map[string]interface{}{
			"description": "Successful operation",
			"content": map[string]interface{}{
				"application/json": map[string]interface{}{"schema": apiResponse},
			},
		},
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Leasecraft API",
			"description": "Template management, blank-space detection and filling, and document generation for legal and administrative documents",
			"version":     "1.0.0",
		},
		"servers": []map[string]interface{}{
			{"url": "/", "description": "This server"},
		},
		"paths": map[string]interface{}{
			"/api/v1/templates": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List templates",
					"parameters": []map[string]interface{}{
						{"name": "q", "in": "query", "schema": map[string]interface{}{"type": "string"}, "description": "Fuzzy search query"},
						{"name": "tag", "in": "query", "schema": map[string]interface{}{"type": "string"}},
						{"name": "doc_type", "in": "query", "schema": map[string]interface{}{"type": "string"}},
					},
					"responses": okResponse,
				},
				"post": map[string]interface{}{
					"summary": "Create a template",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"id", "name", "content"},
									"properties": map[string]interface{}{
										"id":       map[string]interface{}{"type": "string"},
										"name":     map[string]interface{}{"type": "string"},
										"summary":  map[string]interface{}{"type": "string"},
										"doc_type": map[string]interface{}{"type": "string"},
										"content":  map[string]interface{}{"type": "string"},
										"tags": map[string]interface{}{
											"type":  "array",
											"items": map[string]interface{}{"type": "string"},
										},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/templates/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Get a template by ID",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
				"delete": map[string]interface{}{
					"summary":    "Delete a template",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/templates/{id}/render": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":    "Render a template with variable substitution",
					"parameters": []map[string]interface{}{idParam},
					"requestBody": map[string]interface{}{
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"variables": map[string]interface{}{
											"type":                 "object",
											"additionalProperties": map[string]interface{}{"type": "string"},
										},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/documents": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List working documents",
					"parameters": []map[string]interface{}{
						{"name": "archived", "in": "query", "schema": map[string]interface{}{"type": "boolean"}},
					},
					"responses": okResponse,
				},
				"post": map[string]interface{}{
					"summary": "Create a working document from a template",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"template_id", "name"},
									"properties": map[string]interface{}{
										"template_id": map[string]interface{}{"type": "string"},
										"name":        map[string]interface{}{"type": "string"},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/documents/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Get a document by ID",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
				"delete": map[string]interface{}{
					"summary":    "Delete a document",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/documents/{id}/blanks": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Detect and list blank spaces in document order",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
				"post": map[string]interface{}{
					"summary":    "Insert a new blank space at an offset",
					"parameters": []map[string]interface{}{idParam},
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"position"},
									"properties": map[string]interface{}{
										"position": map[string]interface{}{"type": "integer"},
										"length":   map[string]interface{}{"type": "integer"},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/documents/{id}/fill": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":    "Fill one blank space by ID",
					"parameters": []map[string]interface{}{idParam},
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"blank_id", "content"},
									"properties": map[string]interface{}{
										"blank_id": map[string]interface{}{"type": "string"},
										"content":  map[string]interface{}{"type": "string"},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/documents/{id}/autofill": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":    "Fill blanks in order from an instruction record",
					"parameters": []map[string]interface{}{idParam},
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{"$ref": "#/components/schemas/InstructionRecord"},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/documents/{id}/placeholders": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "List blanks with ordinals and semantic categories",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/documents/{id}/completion": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Report fill progress",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/documents/{id}/preview": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Plain-text preview with blanks rendered as dotted gaps",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/documents/{id}/archive": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":    "Move a document into the archive",
					"parameters": []map[string]interface{}{idParam},
					"responses":  okResponse,
				},
			},
			"/api/v1/documents/{id}/generate": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Download the finished document as DOCX or plain text",
					"parameters": []map[string]interface{}{
						idParam,
						{"name": "output", "in": "query", "schema": map[string]interface{}{"type": "string", "enum": []string{"docx", "text"}}},
						{"name": "force", "in": "query", "schema": map[string]interface{}{"type": "boolean"}, "description": "Generate even when blanks remain unfilled"},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Generated file"},
						"412": map[string]interface{}{"description": "Document has unfilled blanks"},
					},
				},
			},
			"/api/v1/doc-types": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":   "List document types with field schedules",
					"responses": okResponse,
				},
			},
			"/api/v1/import": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Import template files from a directory",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"path"},
									"properties": map[string]interface{}{
										"path":     map[string]interface{}{"type": "string"},
										"doc_type": map[string]interface{}{"type": "string"},
										"dry_run":  map[string]interface{}{"type": "boolean"},
									},
								},
							},
						},
					},
					"responses": okResponse,
				},
			},
			"/api/v1/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":   "System health check",
					"responses": okResponse,
				},
			},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"APIResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"success":   map[string]interface{}{"type": "boolean"},
						"data":      map[string]interface{}{},
						"message":   map[string]interface{}{"type": "string"},
						"error":     map[string]interface{}{},
						"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
					},
				},
				"InstructionRecord": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"landlord_name":      map[string]interface{}{"type": "string"},
						"tenant_name":        map[string]interface{}{"type": "string"},
						"property_reference": map[string]interface{}{"type": "string"},
						"property_address":   map[string]interface{}{"type": "string"},
						"postal_address":     map[string]interface{}{"type": "string"},
						"site_description":   map[string]interface{}{"type": "string"},
						"commencement_date":  map[string]interface{}{"type": "string", "format": "date"},
						"term_years":         map[string]interface{}{"type": "integer"},
						"rent_amount":        map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	}
}
