// Package seed resets the store to the demonstration catalog.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"maison-gda/internal/config"
	"maison-gda/internal/domain"
	"maison-gda/internal/repository"
	"maison-gda/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Invalidator drops cached taxonomy listings
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Summary counts what a seed run inserted
type Summary struct {
	Brands     int
	Categories int
	Products   int
	Favorites  int
	UserID     uuid.UUID
}

// Seeder purges the store and loads the demonstration catalog
type Seeder struct {
	db       *sql.DB
	tokens   service.TokenSettings
	taxonomy Invalidator
	logger   *zap.Logger
	now      func() time.Time
}

// NewSeeder builds a Seeder over db. taxonomy may be nil.
func NewSeeder(db *sql.DB, tokens service.TokenSettings, taxonomy Invalidator, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:       db,
		tokens:   tokens,
		taxonomy: taxonomy,
		logger:   logger,
		now:      time.Now,
	}
}

// seedRun holds the stores of one seed transaction
type seedRun struct {
	tx           repository.DBTX
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	users        service.UserService
	favorites    service.FavoriteService
	logger       *zap.Logger
	now          func() time.Time
}

func (s *Seeder) bind(tx repository.DBTX) *seedRun {
	return &seedRun{
		tx:           tx,
		brandRepo:    repository.NewBrandRepository(tx),
		categoryRepo: repository.NewCategoryRepository(tx),
		productRepo:  repository.NewProductRepository(tx),
		users:        service.NewUserService(repository.NewUserRepository(tx), repository.NewRefreshTokenRepository(tx), s.tokens),
		favorites:    service.NewFavoriteService(repository.NewFavoriteRepository(tx)),
		logger:       s.logger,
		now:          s.now,
	}
}

// Run replaces all data with the demonstration catalog and a demo user
// who has favorited the first products by name. The whole run is one
// transaction, so a failure leaves the previous data in place.
func (s *Seeder) Run(ctx context.Context, demo config.SeedConfig) (*Summary, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	var summary *Summary
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		summary, err = s.bind(tx).load(ctx, c, demo)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Seed committed")

	if s.taxonomy != nil {
		if err := s.taxonomy.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate taxonomy cache", zap.Error(err))
		}
	}

	return summary, nil
}

func (s *seedRun) load(ctx context.Context, c *catalog, demo config.SeedConfig) (*Summary, error) {
	if err := s.purge(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("Database purged")

	brandIDs, err := s.createBrands(ctx, c.Brands)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := s.createCategories(ctx, c.Categories)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Taxonomy created", zap.Int("brands", len(brandIDs)), zap.Int("categories", len(categoryIDs)))

	products, err := s.createProducts(ctx, c.Products, brandIDs, categoryIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Products created", zap.Int("products", len(products)))

	user, err := s.users.Register(ctx, demo.UserName, demo.UserEmail, demo.UserPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	s.logger.Info("Demo user created", zap.String("email", user.Email))

	favorites, err := s.favoriteFirst(ctx, user.ID, products, favoritesPerUser)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Brands:     len(brandIDs),
		Categories: len(categoryIDs),
		Products:   len(products),
		Favorites:  favorites,
		UserID:     user.ID,
	}, nil
}

func (s *seedRun) purge(ctx context.Context) error {
	_, err := s.tx.ExecContext(ctx, `
		TRUNCATE favorites, refresh_tokens, accounts, products, categories, brands, users
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		return fmt.Errorf("failed to purge database: %w", err)
	}
	return nil
}

func (s *seedRun) createBrands(ctx context.Context, entries []taxonEntry) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(entries))
	for _, e := range entries {
		brand := &domain.Brand{
			ID:          uuid.New(),
			Name:        e.Name,
			Slug:        domain.Slugify(e.Name),
			Description: e.Description,
			CreatedAt:   s.now(),
		}
		if err := s.brandRepo.Create(ctx, brand); err != nil {
			return nil, fmt.Errorf("failed to create brand %q: %w", e.Name, err)
		}
		ids[e.Name] = brand.ID
	}
	return ids, nil
}

func (s *seedRun) createCategories(ctx context.Context, entries []taxonEntry) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(entries))
	for _, e := range entries {
		category := &domain.Category{
			ID:          uuid.New(),
			Name:        e.Name,
			Slug:        domain.Slugify(e.Name),
			Description: e.Description,
			CreatedAt:   s.now(),
		}
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", e.Name, err)
		}
		ids[e.Name] = category.ID
	}
	return ids, nil
}

func (s *seedRun) createProducts(ctx context.Context, entries []productEntry, brandIDs, categoryIDs map[string]uuid.UUID) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(entries))
	for _, e := range entries {
		product := newProduct(e, brandIDs[e.Brand], categoryIDs[e.Category], s.now())
		if err := s.productRepo.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", e.Name, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func newProduct(e productEntry, brandID, categoryID uuid.UUID, now time.Time) *domain.Product {
	slug := domain.Slugify(e.Name)
	volume := e.Volume
	concentration := defaultConcentration

	return &domain.Product{
		ID:            uuid.New(),
		Slug:          slug,
		Name:          e.Name,
		Description:   e.Description,
		Price:         e.Price,
		OriginalPrice: decimal.NewNullDecimal(e.Price.Add(markup)),
		Volume:        &volume,
		Concentration: &concentration,
		Gender:        domain.GenderUnisex,
		TopNotes:      e.TopNotes,
		HeartNotes:    e.HeartNotes,
		BaseNotes:     e.BaseNotes,
		Images:        []string{"/products/" + slug + ".png"},
		Featured:      featuredProducts[e.Name],
		InStock:       true,
		BrandID:       brandID,
		CategoryID:    categoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// favoriteFirst favorites the first n products in name order
func (s *seedRun) favoriteFirst(ctx context.Context, userID uuid.UUID, products []*domain.Product, n int) (int, error) {
	sorted := append([]*domain.Product(nil), products...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	for _, p := range sorted {
		if _, err := s.favorites.Toggle(ctx, userID, p.ID); err != nil {
			return 0, fmt.Errorf("failed to favorite %q: %w", p.Name, err)
		}
	}
	return len(sorted), nil
}
