package models

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1640995200"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string            `json:"code" example:"INVALID_REQUEST"`
	Message string            `json:"message" example:"Invalid request parameters"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// UserResponse represents user information
type UserResponse struct {
	ID          int64    `json:"id" example:"123"`
	Email       string   `json:"email" example:"consultant@transera.io"`
	Name        string   `json:"name" example:"Ama Mensah"`
	Role        string   `json:"role" example:"consultant"`
	Permissions []string `json:"permissions" example:"candidates.read,jobs.read"`
	IsActive    bool     `json:"is_active" example:"true"`
	LastLogin   *int64   `json:"last_login,omitempty" example:"1640995200"`
	CreatedAt   int64    `json:"created_at" example:"1640995200"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Success bool          `json:"success" example:"true"`
	Token   string        `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *UserResponse `json:"user,omitempty"`
}

// VerifyResponse represents the whoami endpoint's answer
type VerifyResponse struct {
	Authenticated bool          `json:"authenticated" example:"true"`
	User          *UserResponse `json:"user,omitempty"`
}

// CSRFResponse carries a freshly issued anti-forgery token
type CSRFResponse struct {
	Token string `json:"csrf_token"`
}

// ActivityResponse represents an activity log entry
type ActivityResponse struct {
	ID         int64  `json:"id" example:"12345"`
	UserID     int64  `json:"user_id" example:"7"`
	Action     string `json:"action" example:"candidate_created"`
	EntityType string `json:"entity_type,omitempty" example:"candidate"`
	EntityID   int64  `json:"entity_id,omitempty" example:"42"`
	Details    string `json:"details,omitempty"`
	IPAddress  string `json:"ip_address,omitempty" example:"192.168.1.100"`
	Timestamp  int64  `json:"timestamp" example:"1640995200"`
}

// PaginatedResponse represents a paginated response
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	CurrentPage int  `json:"current_page" example:"1"`
	PageSize    int  `json:"page_size" example:"20"`
	HasNext     bool `json:"has_next" example:"true"`
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp int64                  `json:"timestamp" example:"1640995200"`
	Version   string                 `json:"version" example:"1.0.0"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}
