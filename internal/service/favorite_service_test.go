package service

import (
	"context"
	"testing"

	"maison-gda/internal/domain"
	"maison-gda/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts(n int) []*domain.Product {
	products := make([]*domain.Product, n)
	for i := range products {
		products[i] = &domain.Product{ID: uuid.New()}
	}
	return products
}

func TestProperty_FavoritesMirrorToggleParity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a product is a favorite iff it was toggled an odd number of times", prop.ForAll(
		func(sequence []int) bool {
			products := testProducts(5)
			service := NewFavoriteService(newMockFavoriteRepository(products...))
			ctx := context.Background()
			user := uuid.New()

			counts := map[uuid.UUID]int{}
			for _, idx := range sequence {
				p := products[idx]
				result, err := service.Toggle(ctx, user, p.ID)
				if err != nil {
					return false
				}
				counts[p.ID]++

				want := domain.FavoriteAdded
				if counts[p.ID]%2 == 0 {
					want = domain.FavoriteRemoved
				}
				if result != want {
					return false
				}
			}

			favorites, err := service.List(ctx, user)
			if err != nil {
				return false
			}

			odd := 0
			for _, c := range counts {
				if c%2 == 1 {
					odd++
				}
			}
			if len(favorites) != odd {
				return false
			}
			for _, f := range favorites {
				if counts[f.ProductID]%2 != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFavoriteService_ListNewestFirst(t *testing.T) {
	products := testProducts(3)
	service := NewFavoriteService(newMockFavoriteRepository(products...))
	ctx := context.Background()
	user := uuid.New()

	for _, p := range products {
		_, err := service.Toggle(ctx, user, p.ID)
		require.NoError(t, err)
	}

	favorites, err := service.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.Equal(t, products[2].ID, favorites[0].ProductID)
	assert.Equal(t, products[0].ID, favorites[2].ProductID)
}

func TestFavoriteService_UnknownProduct(t *testing.T) {
	service := NewFavoriteService(newMockFavoriteRepository())

	_, err := service.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
