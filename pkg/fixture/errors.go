package fixture

import "errors"

// Sentinel errors for common error conditions
var (
	// Catalog errors
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrFixtureMissing  = errors.New("fixture file missing on disk")

	// Upload errors
	ErrNoFilePart  = errors.New("multipart form has no file part")
	ErrNotCSV      = errors.New("file is not a csv")
	ErrUploadEmpty = errors.New("uploaded file is empty")
)
