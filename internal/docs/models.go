package docs

// Response envelope models for Swagger documentation. These mirror the
// shapes the response package writes without importing it, so swag can
// resolve them statically.

// APIResponse is the standard envelope for all API responses
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456789"`
	Timestamp int64       `json:"timestamp,omitempty" example:"1735689600"`
	Version   string      `json:"version,omitempty" example:"v1"`
}

// ErrorResponse is the envelope for failed requests
type ErrorResponse struct {
	Success   bool        `json:"success" example:"false"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456789"`
	Timestamp int64       `json:"timestamp,omitempty" example:"1735689600"`
	Version   string      `json:"version,omitempty" example:"v1"`
}

// ErrorDetail describes what went wrong
type ErrorDetail struct {
	Type    string       `json:"type" example:"VALIDATION_ERROR"`
	Message string       `json:"message" example:"invalid analysis request"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError pins a validation failure to a single field
type FieldError struct {
	Field   string `json:"field" example:"task_type"`
	Message string `json:"message" example:"must be one of house tree person family"`
	Code    string `json:"code,omitempty" example:"oneof"`
}

// PaginationResponse is the envelope for paginated list responses
type PaginationResponse struct {
	APIResponse
	Meta ResponseMeta `json:"meta"`
}

// ResponseMeta carries the pagination block
type ResponseMeta struct {
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalItems   int64 `json:"total_items" example:"95"`
	ItemsPerPage int   `json:"items_per_page" example:"20"`
	HasNext      bool  `json:"has_next" example:"true"`
	HasPrev      bool  `json:"has_prev" example:"false"`
}

// HealthResponse reports aggregate and per-dependency health
type HealthResponse struct {
	Status    string                   `json:"status" example:"healthy"`
	Services  map[string]ServiceHealth `json:"services"`
	Timestamp string                   `json:"timestamp" example:"2026-01-15T10:30:00Z"`
	Uptime    string                   `json:"uptime" example:"72h14m3s"`
}

// ServiceHealth is the health of one dependency
type ServiceHealth struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:"connection refused"`
	Latency string `json:"latency,omitempty" example:"1.2ms"`
}
