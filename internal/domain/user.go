package domain

import "time"

// Identity is the verified result of authenticating a bearer credential.
// SubjectID is the stable external identity key; the token is always the
// source of truth for Email and DisplayName.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string // optional — empty when the provider has no name claim
}

// User is the local record of an externally-authenticated subject.
// Created on first successful authentication and refreshed on every
// subsequent one; never deleted by this system.
type User struct {
	SubjectID   string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
