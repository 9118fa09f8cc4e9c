package app

import (
	"fmt"
	"sync"

	catalogHTTP "github.com/stockbar/stockbar/internal/catalog/http"
	catalogRepository "github.com/stockbar/stockbar/internal/catalog/repository"
	catalogUsecase "github.com/stockbar/stockbar/internal/catalog/usecase"
)

// catalogComponents holds the catalog domain dependencies.
type catalogComponents struct {
	catalogRepo    catalogUsecase.CatalogRepository
	catalogUseCase catalogUsecase.UseCase
	catalogHandler *catalogHTTP.CatalogHandler

	catalogRepoInit    sync.Once
	catalogUseCaseInit sync.Once
	catalogHandlerInit sync.Once
}

// CatalogRepository returns the catalog repository instance.
func (c *Container) CatalogRepository() (catalogUsecase.CatalogRepository, error) {
	c.catalogRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["catalogRepo"] = fmt.Errorf("failed to get database for catalog repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.catalogRepo = catalogRepository.NewMySQLCatalogRepository(db)
		case "postgres":
			c.catalogRepo = catalogRepository.NewPostgreSQLCatalogRepository(db)
		default:
			c.initErrors["catalogRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["catalogRepo"]; exists {
		return nil, storedErr
	}
	return c.catalogRepo, nil
}

// CatalogUseCase returns the catalog use case instance.
func (c *Container) CatalogUseCase() (catalogUsecase.UseCase, error) {
	c.catalogUseCaseInit.Do(func() {
		catalogRepo, err := c.CatalogRepository()
		if err != nil {
			c.initErrors["catalogUseCase"] = err
			return
		}
		c.catalogUseCase = catalogUsecase.NewCatalogUseCase(catalogRepo)
	})
	if storedErr, exists := c.initErrors["catalogUseCase"]; exists {
		return nil, storedErr
	}
	return c.catalogUseCase, nil
}

// CatalogHandler returns the catalog handler instance.
func (c *Container) CatalogHandler() (*catalogHTTP.CatalogHandler, error) {
	c.catalogHandlerInit.Do(func() {
		catalogUseCase, err := c.CatalogUseCase()
		if err != nil {
			c.initErrors["catalogHandler"] = err
			return
		}
		c.catalogHandler = catalogHTTP.NewCatalogHandler(catalogUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["catalogHandler"]; exists {
		return nil, storedErr
	}
	return c.catalogHandler, nil
}
