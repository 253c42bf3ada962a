package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"maison-gda/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      "Test User",
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, NewUserRepository(testDB).Create(context.Background(), user))
	return user
}

func favoriteRows(t *testing.T, userID, productID uuid.UUID) int {
	t.Helper()
	var n int
	err := testDB.QueryRow(
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestProperty_ToggleTwiceRestoresMembership(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "toggle@example.com")
	repo := NewFavoriteRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("two toggles leave the favorite set unchanged", prop.ForAll(
		func(productIdx int, preToggles int) bool {
			product := fx.products[productIdx]

			for i := 0; i < preToggles; i++ {
				if _, err := repo.Toggle(ctx, user.ID, product.ID); err != nil {
					t.Logf("Toggle failed: %v", err)
					return false
				}
			}
			before, err := repo.Exists(ctx, user.ID, product.ID)
			if err != nil {
				return false
			}

			first, err := repo.Toggle(ctx, user.ID, product.ID)
			if err != nil {
				return false
			}
			second, err := repo.Toggle(ctx, user.ID, product.ID)
			if err != nil {
				return false
			}

			after, err := repo.Exists(ctx, user.ID, product.ID)
			if err != nil {
				return false
			}

			wantFirst := domain.FavoriteAdded
			if before {
				wantFirst = domain.FavoriteRemoved
			}
			return before == after && first == wantFirst && second != first
		},
		gen.IntRange(0, 19),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "flip@example.com")
	repo := NewFavoriteRepository(testDB)
	ctx := context.Background()
	product := fx.products[0]

	result, err := repo.Toggle(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteAdded, result)
	assert.Equal(t, 1, favoriteRows(t, user.ID, product.ID))

	loaded, err := NewProductRepository(testDB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.FavoriteCount)

	result, err = repo.Toggle(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteRemoved, result)
	assert.Zero(t, favoriteRows(t, user.ID, product.ID))
}

func TestToggle_UnknownProductOrUser(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "ghost@example.com")
	repo := NewFavoriteRepository(testDB)
	ctx := context.Background()

	_, err := repo.Toggle(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = repo.Toggle(ctx, uuid.New(), fx.products[0].ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggle_ConcurrentTogglesKeepPairUnique(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "race@example.com")
	repo := NewFavoriteRepository(testDB)
	product := fx.products[1]

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Toggle(context.Background(), user.ID, product.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent toggle failed: %v", err)
	}

	rows := favoriteRows(t, user.ID, product.ID)
	assert.LessOrEqual(t, rows, 1)

	exists, err := repo.Exists(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, rows == 1, exists)
}

func TestList_NewestFavoriteFirst(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "list@example.com")
	other := createTestUser(t, "other@example.com")
	repo := NewFavoriteRepository(testDB)
	ctx := context.Background()

	order := []*domain.Product{fx.products[4], fx.products[11], fx.products[17]}
	for _, p := range order {
		_, err := repo.Toggle(ctx, user.ID, p.ID)
		require.NoError(t, err)
	}
	_, err := repo.Toggle(ctx, other.ID, fx.products[0].ID)
	require.NoError(t, err)

	favorites, err := repo.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 3)

	for i, f := range favorites {
		want := order[len(order)-1-i]
		assert.Equal(t, want.ID, f.ProductID)
		require.NotNil(t, f.Product)
		assert.Equal(t, want.Name, f.Product.Name)
		require.NotNil(t, f.Product.Brand)
		require.NotNil(t, f.Product.Category)
		assert.Equal(t, user.ID, f.UserID)
	}

	empty, err := repo.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestToggle_JoinsCallerTransaction(t *testing.T) {
	fx := seedCatalogFixture(t)
	user := createTestUser(t, "tx@example.com")
	ctx := context.Background()
	product := fx.products[2]

	abort := errors.New("abort")
	err := WithTx(ctx, testDB, func(tx *sql.Tx) error {
		result, err := NewFavoriteRepository(tx).Toggle(ctx, user.ID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FavoriteAdded, result)
		return abort
	})
	require.ErrorIs(t, err, abort)
	assert.Equal(t, 0, favoriteRows(t, user.ID, product.ID), "rolled back with the caller")

	err = WithTx(ctx, testDB, func(tx *sql.Tx) error {
		_, err := NewFavoriteRepository(tx).Toggle(ctx, user.ID, product.ID)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, favoriteRows(t, user.ID, product.ID))
}
