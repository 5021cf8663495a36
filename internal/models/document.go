package models

import "time"

// Document is metadata for a scanned file attached to a case. The bytes live
// in external storage; the portal only tracks name, size, uploader and URL.
type Document struct {
	ID           string    `json:"id"`
	CaseID       string    `json:"case_id"`
	Name         string    `json:"name"`
	UploadedBy   string    `json:"uploaded_by"`
	UploaderRole Role      `json:"uploader_role"`
	SizeBytes    int64     `json:"size_bytes"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}
