// Package usecase implements the user business logic: provisioning users from
// federated identities, resolving principals for session authentication, and
// onboarding.
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	"github.com/stockbar/stockbar/internal/database"
	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/user/domain"
)

// UseCase defines the interface for user business logic operations
type UseCase interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Onboard attaches the user to an organization and promotes it to ADMIN.
	// The terms of service must be accepted.
	Onboard(ctx context.Context, userID uuid.UUID, organizationID int64, acceptTerms bool) (*domain.User, error)
	// SetRole changes a user's role by email. Used by the operator CLI.
	SetRole(ctx context.Context, email, roleName string) error

	// ProvisionIdentity resolves or creates the local user for a verified
	// federated identity.
	ProvisionIdentity(ctx context.Context, identity *authDomain.Identity) (*authDomain.Principal, error)
	// ResolvePrincipal resolves the current principal for a stored user id.
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*authDomain.Principal, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// RoleRepository interface defines role repository operations
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

// OrganizationGetter checks that an organization exists before a user is
// attached to it. Implemented by the organization use case.
type OrganizationGetter interface {
	Exists(ctx context.Context, id int64) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager     database.TxManager
	userRepo      UserRepository
	roleRepo      RoleRepository
	organizations OrganizationGetter
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	roleRepo RoleRepository,
	organizations OrganizationGetter,
) *UserUseCase {
	return &UserUseCase{
		txManager:     txManager,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		organizations: organizations,
	}
}

// GetByID retrieves a user by ID
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// Onboard attaches the user to an organization and promotes it to ADMIN.
// The whole operation runs in a transaction so a failed promotion never leaves
// the user half-onboarded.
func (uc *UserUseCase) Onboard(
	ctx context.Context,
	userID uuid.UUID,
	organizationID int64,
	acceptTerms bool,
) (*domain.User, error) {
	if !acceptTerms {
		return nil, domain.ErrTermsNotAccepted
	}

	var onboarded *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := uc.organizations.Exists(ctx, organizationID); err != nil {
			return err
		}

		adminRole, err := uc.roleRepo.GetByName(ctx, domain.RoleNameAdmin)
		if err != nil {
			return err
		}

		user.OrganizationID = &organizationID
		user.Role = *adminRole
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}

		onboarded = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return onboarded, nil
}

// SetRole changes a user's role by email
func (uc *UserUseCase) SetRole(ctx context.Context, email, roleName string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return err
		}

		role, err := uc.roleRepo.GetByName(ctx, roleName)
		if err != nil {
			return err
		}

		user.Role = *role
		return uc.userRepo.Update(ctx, user)
	})
}

// ProvisionIdentity resolves or creates the local user for a verified
// federated identity. New users start with the USER role and no organization.
func (uc *UserUseCase) ProvisionIdentity(
	ctx context.Context,
	identity *authDomain.Identity,
) (*authDomain.Principal, error) {
	email := normalizeEmail(identity.Email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return toPrincipal(user), nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	userRole, err := uc.roleRepo.GetByName(ctx, domain.RoleNameUser)
	if err != nil {
		return nil, err
	}

	user = &domain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: email,
		Name:  strings.TrimSpace(identity.Name),
		Role:  *userRole,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Another login for the same identity may have won the race.
		if apperrors.Is(err, apperrors.ErrConflict) {
			existing, getErr := uc.userRepo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, getErr
			}
			return toPrincipal(existing), nil
		}
		return nil, err
	}

	return toPrincipal(user), nil
}

// ResolvePrincipal resolves the current principal for a stored user id.
// Reads the user fresh so role and organization changes take effect on the
// next authenticated request.
func (uc *UserUseCase) ResolvePrincipal(
	ctx context.Context,
	userID uuid.UUID,
) (*authDomain.Principal, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPrincipal(user), nil
}

// toPrincipal maps a user to the authentication principal.
func toPrincipal(user *domain.User) *authDomain.Principal {
	return &authDomain.Principal{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           authDomain.Role(user.Role.Name),
		OrganizationID: user.OrganizationID,
	}
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
