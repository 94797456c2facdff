package model

import "time"

// RequestStatus is the lifecycle of a document request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestUploaded RequestStatus = "uploaded"
	RequestOverdue  RequestStatus = "overdue"
)

// DocumentRequest is an admin-created ask for a target user to upload a
// document of a given category before a due date.
type DocumentRequest struct {
	ID           string        `json:"id"`
	RequestTitle string        `json:"request_title"`
	RequestDesc  string        `json:"request_desc"`
	AdminID      string        `json:"admin_id"`
	TargetUserID string        `json:"target_user_id"`
	CategoryID   string        `json:"category_id"`
	DueDate      time.Time     `json:"due_date"`
	UploadDate   *time.Time    `json:"upload_date,omitempty"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// DocumentCategory classifies document requests.
type DocumentCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
