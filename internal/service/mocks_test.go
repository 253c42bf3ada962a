package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"maison-gda/internal/domain"
	"maison-gda/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	switch {
	case !exists:
		return nil, repository.ErrRefreshTokenNotFound
	case refreshToken.Revoked:
		return nil, repository.ErrRefreshTokenRevoked
	case time.Now().After(refreshToken.ExpiresAt):
		return nil, repository.ErrRefreshTokenExpired
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, token := range m.tokens {
		if token.UserID == userID && !token.Revoked {
			token.Revoked = true
			n++
		}
	}
	return n, nil
}

// mockFavoriteRepository keeps favorites in memory keyed by user then product
type mockFavoriteRepository struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*domain.Product
	favorites map[uuid.UUID]map[uuid.UUID]time.Time
	clock     time.Time
}

func newMockFavoriteRepository(products ...*domain.Product) *mockFavoriteRepository {
	m := &mockFavoriteRepository{
		products:  make(map[uuid.UUID]*domain.Product),
		favorites: make(map[uuid.UUID]map[uuid.UUID]time.Time),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockFavoriteRepository) Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[productID]; !ok {
		return "", repository.ErrProductNotFound
	}

	set := m.favorites[userID]
	if _, ok := set[productID]; ok {
		delete(set, productID)
		return domain.FavoriteRemoved, nil
	}

	if set == nil {
		set = make(map[uuid.UUID]time.Time)
		m.favorites[userID] = set
	}
	m.clock = m.clock.Add(time.Second)
	set[productID] = m.clock
	return domain.FavoriteAdded, nil
}

func (m *mockFavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	favorites := []*domain.Favorite{}
	for productID, at := range m.favorites[userID] {
		favorites = append(favorites, &domain.Favorite{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			CreatedAt: at,
			Product:   m.products[productID],
		})
	}
	sort.Slice(favorites, func(i, j int) bool { return favorites[i].CreatedAt.After(favorites[j].CreatedAt) })
	return favorites, nil
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.favorites[userID][productID]
	return ok, nil
}
