package service

import (
	"context"
	"errors"
	"fmt"

	"maison-gda/internal/domain"
	"maison-gda/internal/repository"

	"github.com/google/uuid"
)

// FavoriteService manages a user's favorite products
type FavoriteService interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteService creates a new instance of FavoriteService
func NewFavoriteService(favoriteRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// Toggle adds the product to the user's favorites or removes it
func (s *favoriteService) Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error) {
	result, err := s.favoriteRepo.Toggle(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return result, nil
}

// List returns the user's favorites, most recent first
func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	favorites, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
