// internal/store/interface.go
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/webstore/backend/internal/models"
)

// ErrInsufficientStock is returned by DecrementStock when fewer units are
// on hand than the decrement asks for.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductStore is an abstract persistent collection of products with
// atomic per-document read/write.
type ProductStore interface {
	Create(p *models.Product) error
	ByID(id uuid.UUID) (*models.Product, error)
	ByName(name string) (*models.Product, error)
	All() ([]models.Product, error)
	Save(p *models.Product) error
	Count() (int64, error)

	// DecrementStock moves amount units from quantity to units_sold as a
	// single conditional update: it succeeds only when quantity >= amount,
	// so concurrent checkouts can never drive quantity negative.
	DecrementStock(name string, amount int) error
}

// UserStore is an abstract persistent collection of user accounts.
// The cart is embedded on the user document and written with it.
type UserStore interface {
	Create(u *models.User) error
	ByID(id uuid.UUID) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	Save(u *models.User) error
}

// CommentStore is an abstract persistent collection of product comments.
type CommentStore interface {
	Create(c *models.Comment) error
	ByID(id uuid.UUID) (*models.Comment, error)
	ByProduct(productID uuid.UUID) ([]models.Comment, error)
	All() ([]models.Comment, error)
	Delete(id uuid.UUID) error
}
