package app

import (
	"fmt"
	"sync"

	orgHTTP "github.com/stockbar/stockbar/internal/organization/http"
	orgRepository "github.com/stockbar/stockbar/internal/organization/repository"
	orgUsecase "github.com/stockbar/stockbar/internal/organization/usecase"
)

// organizationComponents holds the organization domain dependencies.
type organizationComponents struct {
	organizationRepo    orgUsecase.OrganizationRepository
	organizationUseCase orgUsecase.UseCase
	organizationHandler *orgHTTP.OrganizationHandler

	organizationRepoInit    sync.Once
	organizationUseCaseInit sync.Once
	organizationHandlerInit sync.Once
}

// OrganizationRepository returns the organization repository instance.
func (c *Container) OrganizationRepository() (orgUsecase.OrganizationRepository, error) {
	c.organizationRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["organizationRepo"] = fmt.Errorf("failed to get database for organization repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.organizationRepo = orgRepository.NewMySQLOrganizationRepository(db)
		case "postgres":
			c.organizationRepo = orgRepository.NewPostgreSQLOrganizationRepository(db)
		default:
			c.initErrors["organizationRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["organizationRepo"]; exists {
		return nil, storedErr
	}
	return c.organizationRepo, nil
}

// OrganizationUseCase returns the organization use case instance.
func (c *Container) OrganizationUseCase() (orgUsecase.UseCase, error) {
	c.organizationUseCaseInit.Do(func() {
		organizationRepo, err := c.OrganizationRepository()
		if err != nil {
			c.initErrors["organizationUseCase"] = err
			return
		}
		c.organizationUseCase = orgUsecase.NewOrganizationUseCase(organizationRepo)
	})
	if storedErr, exists := c.initErrors["organizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.organizationUseCase, nil
}

// OrganizationHandler returns the organization handler instance.
func (c *Container) OrganizationHandler() (*orgHTTP.OrganizationHandler, error) {
	c.organizationHandlerInit.Do(func() {
		organizationUseCase, err := c.OrganizationUseCase()
		if err != nil {
			c.initErrors["organizationHandler"] = err
			return
		}
		c.organizationHandler = orgHTTP.NewOrganizationHandler(organizationUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["organizationHandler"]; exists {
		return nil, storedErr
	}
	return c.organizationHandler, nil
}
