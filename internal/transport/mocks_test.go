package transport

import (
	"context"
	"sync"
	"time"

	"maison-gda/internal/domain"
	"maison-gda/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, token := range m.tokens {
		if token.UserID == userID && !token.Revoked {
			token.Revoked = true
			n++
		}
	}
	return n, nil
}

// fakeCatalogService records the last listing query and serves fixed data
type fakeCatalogService struct {
	lastQuery  domain.ProductQuery
	lastViewer *uuid.UUID
	products   map[string]*domain.Product
	favorites  map[uuid.UUID]bool
	err        error
}

func (f *fakeCatalogService) ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastQuery = query
	return &domain.ProductPage{
		Products:   []*domain.Product{},
		Pagination: domain.NewPagination(query.Page, query.Limit, 0),
	}, nil
}

func (f *fakeCatalogService) GetProductBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*domain.ProductDetail, error) {
	f.lastViewer = viewerID
	product, ok := f.products[slug]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	detail := &domain.ProductDetail{Product: product}
	if viewerID != nil {
		detail.IsFavorite = f.favorites[*viewerID]
	}
	return detail, nil
}

func (f *fakeCatalogService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Brand{{ID: uuid.New(), Name: "Maison Ambre", Slug: "maison-ambre", ProductCount: 3}}, nil
}

func (f *fakeCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Category{{ID: uuid.New(), Name: "Oriental", Slug: "oriental", ProductCount: 2}}, nil
}

// fakeFavoriteService holds one set of product IDs per user
type fakeFavoriteService struct {
	mu      sync.Mutex
	known   map[uuid.UUID]bool
	sets    map[uuid.UUID]map[uuid.UUID]bool
	toggles int
}

func newFakeFavoriteService(products ...uuid.UUID) *fakeFavoriteService {
	f := &fakeFavoriteService{
		known: make(map[uuid.UUID]bool),
		sets:  make(map[uuid.UUID]map[uuid.UUID]bool),
	}
	for _, id := range products {
		f.known[id] = true
	}
	return f
}

func (f *fakeFavoriteService) Toggle(ctx context.Context, userID, productID uuid.UUID) (domain.ToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++

	if !f.known[productID] {
		return "", repository.ErrProductNotFound
	}
	set := f.sets[userID]
	if set == nil {
		set = make(map[uuid.UUID]bool)
		f.sets[userID] = set
	}
	if set[productID] {
		delete(set, productID)
		return domain.FavoriteRemoved, nil
	}
	set[productID] = true
	return domain.FavoriteAdded, nil
}

func (f *fakeFavoriteService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	favorites := []*domain.Favorite{}
	for productID := range f.sets[userID] {
		favorites = append(favorites, &domain.Favorite{ID: uuid.New(), UserID: userID, ProductID: productID})
	}
	return favorites, nil
}
