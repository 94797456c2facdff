package model

import "time"

// Company is the tenant boundary; users and documents belong to a company.
// Audit period fields are optional and filled in once an engagement starts.
type Company struct {
	ID               string     `json:"id"`
	CompanyName      string     `json:"company_name"`
	YearOfAssignment *int       `json:"year_of_assignment"`
	StartAuditPeriod *time.Time `json:"start_audit_period"`
	EndAuditPeriod   *time.Time `json:"end_audit_period"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CompanyUserCount is one row of the per-company membership summary.
type CompanyUserCount struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	UserCount   int    `json:"user_count"`
}
