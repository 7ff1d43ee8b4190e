package formsdk

import "time"

// Registration is the JSON form of a stored registration.
type Registration struct {
	ID                  string    `json:"id"`
	Nom                 string    `json:"nom"`
	Prenom              string    `json:"prenom"`
	DateNaissance       string    `json:"date_naissance"`
	Email               string    `json:"email"`
	Telephone           string    `json:"telephone"`
	CNEMassar           string    `json:"cne_massar"`
	Niveau              string    `json:"niveau"`
	Filiere             string    `json:"filiere"`
	Question            *string   `json:"question"`
	PhotoIdentite       *string   `json:"photo_identite"`
	CertificatScolarite *string   `json:"certificat_scolarite"`
	CreatedAt           time.Time `json:"created_at"`
}

// RegistrationSummary is echoed back after a successful registration.
type RegistrationSummary struct {
	ID     string `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Registration *RegistrationSummary `json:"registration,omitempty"`
}

// RegistrationsResponse is returned by GET /registrations.
type RegistrationsResponse struct {
	Success       bool           `json:"success"`
	Registrations []Registration `json:"registrations"`
}

// Stats counts registrations. Recent covers the last seven days.
type Stats struct {
	Total     int            `json:"total"`
	ByFiliere map[string]int `json:"byFiliere"`
	ByNiveau  map[string]int `json:"byNiveau"`
	Recent    int            `json:"recent"`
}

// StatsResponse is returned by GET /stats.
type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

// MessageResponse is the generic {success, message} envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each backing service on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// Upload is a file part sent with a registration.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RegisterRequest is the multipart form accepted by POST /register.
type RegisterRequest struct {
	Nom           string
	Prenom        string
	DateNaissance string
	Email         string
	Telephone     string
	CNEMassar     string
	Niveau        string
	Filiere       string
	Question      string

	Photo       *Upload
	Certificate *Upload
}
