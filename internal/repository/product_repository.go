package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maison-gda/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this slug already exists")
)

// productColumns selects a product with its brand, category and favorite
// count. text[] columns are read in their text form for pq.StringArray.
const productColumns = `
	p.id, p.slug, p.name, p.description, p.price, p.original_price, p.volume,
	p.concentration, p.gender, p.top_notes::text, p.heart_notes::text,
	p.base_notes::text, p.images::text, p.featured, p.in_stock, p.brand_id,
	p.category_id, p.created_at, p.updated_at,
	b.id, b.name, b.slug, b.description, b.website, b.created_at,
	c.id, c.name, c.slug, c.description, c.created_at,
	(SELECT COUNT(*) FROM favorites fc WHERE fc.product_id = p.id)`

const productJoins = `
	FROM products p
	JOIN brands b ON b.id = p.brand_id
	JOIN categories c ON c.id = p.category_id`

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, int, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. Brand and Category must already exist.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if !product.Gender.Valid() {
		return fmt.Errorf("invalid gender %q", product.Gender)
	}

	query := `
		INSERT INTO products (
			id, slug, name, description, price, original_price, volume, concentration,
			gender, top_notes, heart_notes, base_notes, images, featured, in_stock,
			brand_id, category_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	var volume sql.NullInt32
	if product.Volume != nil {
		volume = sql.NullInt32{Int32: int32(*product.Volume), Valid: true}
	}

	var concentration sql.NullString
	if product.Concentration != nil {
		concentration = sql.NullString{String: *product.Concentration, Valid: true}
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Slug,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		volume,
		concentration,
		string(product.Gender),
		nonNil(product.TopNotes),
		nonNil(product.HeartNotes),
		nonNil(product.BaseNotes),
		nonNil(product.Images),
		product.Featured,
		product.InStock,
		product.BrandID,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product with its relations
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` WHERE p.id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindBySlug retrieves a product with its relations by its URL slug
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` WHERE p.slug = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}

	return product, nil
}

// List returns one page of products matching q.Filter and the total number
// of matches regardless of paging.
func (r *productRepository) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, int, error) {
	q = q.Normalize()

	whereClause, args := buildProductPredicate(q.Filter, 1)
	argIndex := len(args) + 1

	// Search matches brand and category names, so the count needs the joins
	countQuery := `SELECT COUNT(*)` + productJoins + ` ` + whereClause
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []*domain.Product{}
	if q.Offset() >= total {
		return products, total, nil
	}

	query := fmt.Sprintf(`SELECT %s %s %s %s LIMIT $%d OFFSET $%d`,
		productColumns, productJoins, whereClause,
		buildProductOrder(q.SortBy, q.SortOrder),
		argIndex, argIndex+1,
	)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// scanProduct reads one productColumns row. lead receives any columns
// selected ahead of productColumns.
func scanProduct(row rowScanner, lead ...interface{}) (*domain.Product, error) {
	var (
		product       = &domain.Product{}
		brand         = &domain.Brand{}
		category      = &domain.Category{}
		volume        sql.NullInt32
		concentration sql.NullString
		gender        string
		topNotes      pq.StringArray
		heartNotes    pq.StringArray
		baseNotes     pq.StringArray
		images        pq.StringArray
	)

	dest := append(lead,
		&product.ID,
		&product.Slug,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.OriginalPrice,
		&volume,
		&concentration,
		&gender,
		&topNotes,
		&heartNotes,
		&baseNotes,
		&images,
		&product.Featured,
		&product.InStock,
		&product.BrandID,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&brand.ID,
		&brand.Name,
		&brand.Slug,
		&brand.Description,
		&brand.Website,
		&brand.CreatedAt,
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&product.FavoriteCount,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if volume.Valid {
		v := int(volume.Int32)
		product.Volume = &v
	}
	if concentration.Valid {
		product.Concentration = &concentration.String
	}
	product.Gender = domain.Gender(gender)
	product.TopNotes = nonNil(topNotes)
	product.HeartNotes = nonNil(heartNotes)
	product.BaseNotes = nonNil(baseNotes)
	product.Images = nonNil(images)
	product.Brand = brand
	product.Category = category

	return product, nil
}

// nonNil turns a nil list into an empty one for text[] columns and JSON
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
