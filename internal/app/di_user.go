package app

import (
	"fmt"
	"sync"

	userHTTP "github.com/stockbar/stockbar/internal/user/http"
	userRepository "github.com/stockbar/stockbar/internal/user/repository"
	userUsecase "github.com/stockbar/stockbar/internal/user/usecase"
)

// userComponents holds the user domain dependencies.
type userComponents struct {
	userRepo       userUsecase.UserRepository
	roleRepo       userUsecase.RoleRepository
	userUseCase    userUsecase.UseCase
	accountHandler *userHTTP.AccountHandler

	userRepoInit       sync.Once
	roleRepoInit       sync.Once
	userUseCaseInit    sync.Once
	accountHandlerInit sync.Once
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// RoleRepository returns the role repository instance.
func (c *Container) RoleRepository() (userUsecase.RoleRepository, error) {
	c.roleRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["roleRepo"] = fmt.Errorf("failed to get database for role repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.roleRepo = userRepository.NewMySQLRoleRepository(db)
		case "postgres":
			c.roleRepo = userRepository.NewPostgreSQLRoleRepository(db)
		default:
			c.initErrors["roleRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.roleRepo, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		roleRepo, err := c.RoleRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		organizationUseCase, err := c.OrganizationUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		c.userUseCase = userUsecase.NewUserUseCase(txManager, userRepo, roleRepo, organizationUseCase)
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// AccountHandler returns the account handler instance.
func (c *Container) AccountHandler() (*userHTTP.AccountHandler, error) {
	c.accountHandlerInit.Do(func() {
		userUseCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["accountHandler"] = err
			return
		}
		c.accountHandler = userHTTP.NewAccountHandler(userUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}
