package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"karesave-backend/internal/catalog"
	"karesave-backend/internal/models"
)

func TestCatalogService_WithoutMongo(t *testing.T) {
	svc := NewCatalogService(nil, catalog.SeedProducts(), zap.NewNop())
	assert.Equal(t, len(catalog.SeedProducts()), svc.Load(context.Background()).Len())
}

func TestCatalogService_LoadsFromMongo(t *testing.T) {
	repo := &productRepoMock{}
	seed := catalog.SeedProducts()
	svc := NewCatalogService(repo, seed, zap.NewNop())

	edited := seed[0]
	edited.Stock = 3
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Times(len(seed))
	repo.On("List", mock.Anything).Return([]models.ProductDocument{
		{Product: edited},
		{Product: catalog.Product{ID: "", Name: "broken"}},
	}, nil).Once()

	c := svc.Load(context.Background())
	assert.Equal(t, 1, c.Len())
	p, ok := c.ProductByID(edited.ID)
	assert.True(t, ok)
	assert.Equal(t, 3, p.Stock)
	repo.AssertExpectations(t)
}

func TestCatalogService_FallsBackOnError(t *testing.T) {
	repo := &productRepoMock{}
	seed := catalog.SeedProducts()
	svc := NewCatalogService(repo, seed, zap.NewNop())
	repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("no primary")).Once()

	c := svc.Load(context.Background())
	assert.Equal(t, len(seed), c.Len())
	repo.AssertNotCalled(t, "List", mock.Anything)
}
