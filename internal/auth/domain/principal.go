// Package domain defines the core authentication and authorization domain types:
// principals, roles, sessions, the access policy table, and the transient
// authorization request sent to an identity provider.
package domain

import (
	"github.com/google/uuid"
)

// Role is an enumerated authorization tag. Roles form a flat set; exactly one
// role is assigned per principal.
type Role string

// Known roles. The set is seeded by migrations; the policy table references
// roles by value.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AuthScheme identifies which trust-establishment mechanism authenticated a
// request. Bearer and session authentication are mutually exclusive per request.
type AuthScheme string

const (
	SchemeBearer  AuthScheme = "bearer"
	SchemeSession AuthScheme = "session"
)

// Principal is the authenticated caller attached to a single request. It lives
// only for the duration of that request and is never mutated.
type Principal struct {
	// ID is the stable identifier of the underlying user.
	ID uuid.UUID
	// Name is the display name.
	Name string
	// Email is the email address established by the identity provider.
	Email string
	// Role is the single role assigned to this principal.
	Role Role
	// OrganizationID is the optional organization affiliation.
	OrganizationID *int64
}

// Identity is the verified identity extracted from a provider's ID token
// during the federated login handshake.
type Identity struct {
	// Subject is the provider-scoped stable subject identifier.
	Subject string
	// Email is the verified email address.
	Email string
	// Name is the display name reported by the provider.
	Name string
}
