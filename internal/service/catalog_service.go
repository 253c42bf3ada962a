package service

import (
	"context"
	"errors"
	"fmt"

	"maison-gda/internal/cache"
	"maison-gda/internal/domain"
	"maison-gda/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxonomyCache stores brand and category listings between requests
type TaxonomyCache interface {
	GetBrands(ctx context.Context) ([]*domain.Brand, error)
	SetBrands(ctx context.Context, brands []*domain.Brand) error
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	SetCategories(ctx context.Context, categories []*domain.Category) error
	Invalidate(ctx context.Context) error
}

// CatalogService serves the read side of the catalog
type CatalogService interface {
	ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*domain.ProductDetail, error)
	ListBrands(ctx context.Context) ([]*domain.Brand, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	favoriteRepo repository.FavoriteRepository
	taxonomy     TaxonomyCache
	logger       *zap.Logger
}

// NewCatalogService creates a CatalogService. taxonomy may be nil, in which case
// taxonomy listings always come from the database.
func NewCatalogService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	favoriteRepo repository.FavoriteRepository,
	taxonomy TaxonomyCache,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		favoriteRepo: favoriteRepo,
		taxonomy:     taxonomy,
		logger:       logger,
	}
}

// ListProducts returns the requested page and its pagination metadata
func (s *catalogService) ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error) {
	query = query.Normalize()

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &domain.ProductPage{
		Products:   products,
		Pagination: domain.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// GetProductBySlug loads one product. IsFavorite is only ever true for a
// signed-in viewer.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*domain.ProductDetail, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	detail := &domain.ProductDetail{Product: product}
	if viewerID != nil {
		detail.IsFavorite, err = s.favoriteRepo.Exists(ctx, *viewerID, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve favorite state: %w", err)
		}
	}

	return detail, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	if s.taxonomy != nil {
		cached, err := s.taxonomy.GetBrands(ctx)
		if err == nil {
			return cached, nil
		}
		s.logCacheError("read brands", err)
	}

	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	if s.taxonomy != nil {
		if err := s.taxonomy.SetBrands(ctx, brands); err != nil {
			s.logCacheError("store brands", err)
		}
	}

	return brands, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if s.taxonomy != nil {
		cached, err := s.taxonomy.GetCategories(ctx)
		if err == nil {
			return cached, nil
		}
		s.logCacheError("read categories", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if s.taxonomy != nil {
		if err := s.taxonomy.SetCategories(ctx, categories); err != nil {
			s.logCacheError("store categories", err)
		}
	}

	return categories, nil
}

// logCacheError records a cache failure; misses are expected and not logged
func (s *catalogService) logCacheError(op string, err error) {
	if errors.Is(err, cache.ErrCacheMiss) {
		return
	}
	s.logger.Warn("Taxonomy cache unavailable, using database", zap.String("op", op), zap.Error(err))
}
