package model

// Package model contains domain models/data structures.
// These are pure domain types with no database-specific dependencies or tags;
// they can be used across layers (HTTP, service, drive) without coupling to persistence.
