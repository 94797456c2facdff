package model

import "time"

// RelayStatus tracks whether a locally staged document has been mirrored
// to the remote drive backend.
type RelayStatus string

const (
	RelayPending  RelayStatus = "pending"
	RelayMirrored RelayStatus = "mirrored"
	RelayFailed   RelayStatus = "failed"
)

// Document represents a stored file in the system. The file itself is staged
// locally and mirrored to the remote drive; DocumentPath is the synthesized
// remote path the relay targets.
type Document struct {
	ID           string      `json:"id"`
	RequestID    *string     `json:"request_id,omitempty"`
	UploadedBy   string      `json:"uploaded_by"`
	CompanyID    string      `json:"company_id"`
	DocumentName string      `json:"document_name"`
	DocumentPath string      `json:"document_path"`
	FileSize     int64       `json:"file_size"`
	MimeType     string      `json:"mime_type"`
	RelayStatus  RelayStatus `json:"relay_status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
