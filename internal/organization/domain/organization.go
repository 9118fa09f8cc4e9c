// Package domain defines the core organization domain entities and types.
package domain

import (
	"time"

	"github.com/stockbar/stockbar/internal/errors"
)

// Organization represents a bar or venue running the dynamic pricing board.
// The pricing steps control how much an item price moves on each sale or
// idle-decay tick.
type Organization struct {
	ID                int64
	Name              string
	PriceIncreaseStep float64
	PriceDecreaseStep float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Domain-specific errors for organization operations.
var (
	// ErrOrganizationNotFound indicates the requested organization does not exist.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrNotFound, "organization not found")

	// ErrOrganizationAlreadyExists indicates an organization with the same name
	// already exists.
	ErrOrganizationAlreadyExists = errors.Wrap(errors.ErrConflict, "organization already exists")
)
