// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/errors"
)

// Role names seeded by the migrations.
const (
	RoleNameUser  = "USER"
	RoleNameAdmin = "ADMIN"
)

// Role represents a user role.
type Role struct {
	ID   int64
	Name string
}

// User represents a user provisioned from a federated identity. Users never
// carry passwords: authentication is always delegated to the identity
// provider or a bearer token.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	Role           Role
	OrganizationID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NeedsOnboarding reports whether the user still has to complete onboarding.
func (u *User) NeedsOnboarding() bool {
	return u.OrganizationID == nil
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrTermsNotAccepted indicates onboarding was attempted without accepting
	// the terms of service.
	ErrTermsNotAccepted = errors.Wrap(errors.ErrInvalidInput, "terms must be accepted")
)
