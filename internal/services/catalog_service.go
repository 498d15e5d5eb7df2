package services

import (
	"context"

	"go.uber.org/zap"

	"karesave-backend/internal/catalog"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
)

// CatalogService mirrors the built-in product list into MongoDB and builds
// the read-only catalog from it.
type CatalogService struct {
	productRepo repositories.ProductRepository
	seed        []catalog.Product
	log         *zap.Logger
}

// NewCatalogService accepts a nil productRepo, in which case the seed is
// used as is.
func NewCatalogService(productRepo repositories.ProductRepository, seed []catalog.Product, log *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		seed:        seed,
		log:         log,
	}
}

// Load upserts the seed and reads the catalog back. Any MongoDB failure falls
// back to the seed so the shop always has products.
func (s *CatalogService) Load(ctx context.Context) *catalog.Catalog {
	if s.productRepo == nil {
		s.log.Info("catalog loaded from built-in seed", zap.Int("products", len(s.seed)))
		return catalog.New(s.seed)
	}

	for i, p := range s.seed {
		doc := &models.ProductDocument{Product: p, SortOrder: i}
		if err := s.productRepo.Upsert(ctx, doc); err != nil {
			s.log.Warn("catalog seed upsert failed, using built-in seed", zap.String("product_id", p.ID), zap.Error(err))
			return catalog.New(s.seed)
		}
	}

	docs, err := s.productRepo.List(ctx)
	if err != nil || len(docs) == 0 {
		s.log.Warn("catalog read failed, using built-in seed", zap.Error(err))
		return catalog.New(s.seed)
	}

	products := make([]catalog.Product, 0, len(docs))
	for _, d := range docs {
		if d.Product.ID == "" || d.Product.Stock < 0 {
			s.log.Warn("skipping malformed catalog document", zap.String("product_id", d.Product.ID))
			continue
		}
		products = append(products, d.Product)
	}
	s.log.Info("catalog loaded from MongoDB", zap.Int("products", len(products)))
	return catalog.New(products)
}
