package fixture

import "time"

// Status represents the health of a catalogued fixture file
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
)

// Source records how a fixture entered the catalog
type Source string

const (
	SourceUploaded  Source = "uploaded"
	SourceGenerated Source = "generated"
)

// Manifest describes one catalogued fixture file
type Manifest struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	StoredPath  string `json:"stored_path"`
	Bytes       int64  `json:"bytes"`
	SHA256      string `json:"sha256"`
	ContentType string `json:"content_type"`
	Source      Source `json:"source"`

	// Set only for generated fixtures
	Generator string `json:"generator,omitempty"`
	Rows      int64  `json:"rows,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
}

// GenerateRequest asks the service to run a generator server-side
type GenerateRequest struct {
	Generator string `json:"generator"`
	Rows      int64  `json:"rows,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
}

// ListResponse returns all catalogued fixtures
type ListResponse struct {
	Fixtures []Manifest `json:"fixtures"`
}

// DeleteResponse is returned after deleting a fixture
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// GeneratorInfo describes one registered generator
type GeneratorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultRows int64  `json:"default_rows"`
}

// GeneratorListResponse returns the registered generators
type GeneratorListResponse struct {
	Generators []GeneratorInfo `json:"generators"`
}

// StatusResponse aggregates catalog totals
type StatusResponse struct {
	Fixtures   int   `json:"fixtures"`
	Uploaded   int   `json:"uploaded"`
	Generated  int   `json:"generated"`
	Missing    int   `json:"missing"`
	TotalBytes int64 `json:"total_bytes"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
