package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a product as liked by a user. A (UserID, ProductID) pair
// exists at most once.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Product   *Product  `json:"product,omitempty"`
}

// ToggleResult is the membership transition a toggle performed
type ToggleResult string

const (
	FavoriteAdded   ToggleResult = "added"
	FavoriteRemoved ToggleResult = "removed"
)

// Message returns the client-facing description of the transition
func (r ToggleResult) Message() string {
	if r == FavoriteRemoved {
		return "Favorite removed"
	}
	return "Favorite added"
}
