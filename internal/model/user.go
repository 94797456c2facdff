package model

import "time"

// Role gates privileged operations such as document request creation.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Membership mirrors the membership_status claim carried in access tokens.
type Membership string

const (
	MembershipDefault Membership = "default"
	MembershipPro     Membership = "pro"
	MembershipCustom  Membership = "custom"
)

// User is an account credential holder belonging to a company.
// PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries per-user authorization attributes. Every user has exactly
// one profile; registration creates both or neither.
type Profile struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Role             Role       `json:"role"`
	MembershipStatus Membership `json:"membership_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
