package models

// LoginRequest represents an authentication login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"consultant@transera.io"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// CreateCandidateRequest represents candidate creation
type CreateCandidateRequest struct {
	FirstName string `json:"first_name" binding:"required" example:"Jane"`
	LastName  string `json:"last_name" binding:"required" example:"Osei"`
	Email     string `json:"email" binding:"omitempty,email" example:"jane.osei@example.com"`
	Phone     string `json:"phone,omitempty" example:"+44 7700 900123"`
	Title     string `json:"title,omitempty" example:"Senior Backend Engineer"`
	Skills    string `json:"skills,omitempty" example:"go,postgres,kubernetes"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateCandidateRequest represents candidate update
type UpdateCandidateRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Title     string `json:"title,omitempty"`
	Skills    string `json:"skills,omitempty"`
	Status    string `json:"status,omitempty" binding:"omitempty,oneof=new screening interviewing placed archived"`
	Notes     string `json:"notes,omitempty"`
}

// CreateJobRequest represents job creation
type CreateJobRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required" example:"Platform Engineer"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty" example:"London (hybrid)"`
	SalaryMin   int64  `json:"salary_min,omitempty"`
	SalaryMax   int64  `json:"salary_max,omitempty"`
}

// UpdateJobRequest represents job update
type UpdateJobRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	SalaryMin   int64  `json:"salary_min,omitempty"`
	SalaryMax   int64  `json:"salary_max,omitempty"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=open on_hold filled closed"`
}

// CreateClientRequest represents client creation
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required" example:"Acme Logistics"`
	Industry     string `json:"industry,omitempty" example:"logistics"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateClientRequest represents client update
type UpdateClientRequest struct {
	Name         string `json:"name,omitempty"`
	Industry     string `json:"industry,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// CreateUserRequest represents user creation (admin only)
type CreateUserRequest struct {
	Email       string   `json:"email" binding:"required,email" example:"new.hire@transera.io"`
	Password    string   `json:"password" binding:"required,min=8"`
	Name        string   `json:"name" binding:"required" example:"New Hire"`
	Role        string   `json:"role" binding:"required,oneof=viewer consultant manager admin" example:"consultant"`
	Permissions []string `json:"permissions,omitempty"`
}

// UpdateUserRoleRequest represents a role change (admin only)
type UpdateUserRoleRequest struct {
	Role        string   `json:"role" binding:"required,oneof=viewer consultant manager admin"`
	Permissions []string `json:"permissions,omitempty"`
}

// UploadRequest represents an upload metadata registration. The binary goes
// to external storage; this records the reference.
type UploadRequest struct {
	EntityType string `json:"entity_type" binding:"required,oneof=candidate job client" example:"candidate"`
	EntityID   int64  `json:"entity_id" binding:"required"`
	FileName   string `json:"file_name" binding:"required" example:"jane-osei-cv.pdf"`
	FileSize   int64  `json:"file_size" binding:"required,min=1,max=26214400"`
	MimeType   string `json:"mime_type" binding:"required" example:"application/pdf"`
}
