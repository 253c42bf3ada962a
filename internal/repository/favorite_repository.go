package repository

import (
	"context"
	"fmt"

	"maison-gda/internal/domain"

	"github.com/google/uuid"
)

// FavoriteRepository is the per-user set of favorited products
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type favoriteRepository struct {
	db DBTX
}

// NewFavoriteRepository creates a new instance of FavoriteRepository
func NewFavoriteRepository(db DBTX) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle flips membership of (userID, productID) inside one transaction.
// A deleted row means removed; otherwise the pair is inserted, and an insert
// that loses to a concurrent one still reports added. When the repository is
// bound to a caller's transaction the statements join it.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error) {
	var outcome domain.ToggleResult
	err := inTx(ctx, r.db, func(q DBTX) error {
		var err error
		outcome, err = toggleFavorite(ctx, q, userID, productID)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			// the pair was inserted concurrently
			return domain.FavoriteAdded, nil
		}
		return "", err
	}
	return outcome, nil
}

func toggleFavorite(ctx context.Context, q DBTX, userID, productID uuid.UUID) (domain.ToggleResult, error) {
	result, err := q.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to delete favorite: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to get rows affected: %w", err)
	}
	if removed > 0 {
		return domain.FavoriteRemoved, nil
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, uuid.New(), userID, productID)
	if err != nil {
		return "", favoriteInsertError(err)
	}
	return domain.FavoriteAdded, nil
}

func favoriteInsertError(err error) error {
	if constraint, ok := foreignKeyConstraint(err); ok {
		switch constraint {
		case "fk_favorites_product":
			return ErrProductNotFound
		case "fk_favorites_user":
			return ErrUserNotFound
		}
	}
	return fmt.Errorf("failed to insert favorite: %w", err)
}

// List returns the user's favorites with their products, newest first
func (r *favoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.product_id, f.created_at, ` + productColumns + `
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		JOIN brands b ON b.id = p.brand_id
		JOIN categories c ON c.id = p.category_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*domain.Favorite{}
	for rows.Next() {
		favorite := &domain.Favorite{}
		product, err := scanProduct(rows,
			&favorite.ID,
			&favorite.UserID,
			&favorite.ProductID,
			&favorite.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorite.Product = product
		favorites = append(favorites, favorite)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}

// Exists reports whether the user has favorited the product
func (r *favoriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
