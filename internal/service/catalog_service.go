package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Categories the storefront recognizes for products.
var Categories = []string{"Electronics", "Home", "Sports", "Fashion", "Other"}

// CatalogService owns product reads and the admin-side CRUD. Single-product
// lookups are served cache-aside from Redis; the cache entry is dropped
// whenever an admin mutates the product, so cart snapshots and stock checks
// see price changes promptly.
type CatalogService struct {
	products repository.ProductRepository
	cache    cache.ProductCache
	log      *zap.Logger
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCatalogService(products repository.ProductRepository, productCache cache.ProductCache, log *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    productCache,
		log:      log,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprint(id), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("product cache get failed", zap.Error(err)) // log cache error but continue
		}

		product, errGet := s.products.GetProduct(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), id, product); errSet != nil {
				s.log.Warn("product cache set failed", zap.Error(errSet))
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *CatalogService) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	return s.products.ListProducts(ctx, filter)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Product) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}
	return s.products.CreateProduct(ctx, p)
}

// ProductPatch carries a partial product update. Nil fields keep the
// current value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Stock       *int
	Category    *string
}

func (s *CatalogService) Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(id)
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(id)
	return nil
}

func (s *CatalogService) invalidateCache(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("product cache invalidate failed", zap.Error(err))
	}
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	if !validCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
