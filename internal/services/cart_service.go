// internal/services/cart_service.go
package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
)

// minLinePrice matches the lowest price a cart line may snapshot.
const minLinePrice = 0.05

// CartService is the cart engine: every cart line is created, mutated and
// destroyed here, never by direct replacement from outside.
type CartService struct {
	users    store.UserStore
	products store.ProductStore

	// legacySoftFail keeps the original silent no-op behavior for adds
	// against an out-of-stock product or a capped line.
	legacySoftFail bool

	// per-user mutexes so concurrent mutations of one cart serialize.
	// Keys are user ID -> *sync.Mutex
	locks sync.Map
}

func NewCartService(users store.UserStore, products store.ProductStore, legacySoftFail bool) *CartService {
	return &CartService{
		users:          users,
		products:       products,
		legacySoftFail: legacySoftFail,
	}
}

// CheckoutResult lists which cart lines were committed and which were
// skipped for lack of stock. Skipped lines stay in the cart.
type CheckoutResult struct {
	User      *models.User     `json:"user"`
	Purchased models.CartLines `json:"purchased"`
	Skipped   models.CartLines `json:"skipped"`
}

// lockUser acquires the process-local mutex for a user's cart and
// returns the unlock func.
func (s *CartService) lockUser(userID uuid.UUID) func() {
	m := &sync.Mutex{}
	actual, _ := s.locks.LoadOrStore(userID, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return func() { mtx.Unlock() }
}

// AddToCart puts one unit of the named product into the user's cart,
// snapshotting priceAtAdd on the line. A line never grows past the
// on-hand quantity observed at call time (stock cap).
func (s *CartService) AddToCart(userID uuid.UUID, productName string, priceAtAdd float64) (*models.User, error) {
	if priceAtAdd < minLinePrice {
		return nil, apperrors.NewValidation("price must be at least 0.05", map[string]interface{}{
			"productName": productName,
			"price":       priceAtAdd,
		})
	}

	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.ByName(productName)
	if err != nil {
		return nil, err
	}

	if i := user.Cart.Find(productName); i >= 0 {
		if user.Cart[i].Amount >= product.Quantity {
			if s.legacySoftFail {
				return user, nil
			}
			return nil, apperrors.NewValidation("cart line already holds all on-hand stock", map[string]interface{}{
				"productName": productName,
				"amount":      user.Cart[i].Amount,
				"quantity":    product.Quantity,
			})
		}
		user.Cart[i].Amount++
	} else {
		if product.Quantity == 0 {
			if s.legacySoftFail {
				return user, nil
			}
			return nil, apperrors.NewValidation("product is out of stock", map[string]interface{}{
				"productName": productName,
			})
		}
		user.Cart = append(user.Cart, models.CartLine{
			ProductName: productName,
			Price:       priceAtAdd,
			Amount:      1,
		})
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveFromCart takes one unit off the named line; a line at amount 1 is
// removed entirely. A name never present in the cart is a not-found error.
func (s *CartService) RemoveFromCart(userID uuid.UUID, productName string) (*models.User, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	i := user.Cart.Find(productName)
	if i < 0 {
		return nil, apperrors.NewNotFound("cart line", productName)
	}

	if user.Cart[i].Amount > 1 {
		user.Cart[i].Amount--
	} else {
		user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Checkout walks the cart in sequence order applying a conditional
// decrement per product. Each product commit is independent: a line that
// cannot be covered by current stock is skipped and stays in the cart,
// lines already committed are not rolled back.
func (s *CartService) Checkout(userID uuid.UUID) (*CheckoutResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		Purchased: models.CartLines{},
		Skipped:   models.CartLines{},
	}
	remaining := models.CartLines{}

	for _, line := range user.Cart {
		err := s.products.DecrementStock(line.ProductName, line.Amount)
		switch {
		case err == nil:
			result.Purchased = append(result.Purchased, line)
		case errors.Is(err, store.ErrInsufficientStock) || apperrors.IsNotFound(err):
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"product": line.ProductName,
				"amount":  line.Amount,
			}).Warn("Checkout line skipped")
			result.Skipped = append(result.Skipped, line)
			remaining = append(remaining, line)
		default:
			return nil, err
		}
	}

	user.Cart = remaining
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	result.User = user
	return result, nil
}

// CartTotal sums price × amount over the user's cart using the snapshot
// prices stored on the lines, not current catalog prices.
func (s *CartService) CartTotal(userID uuid.UUID) (float64, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return 0, err
	}
	return user.Cart.Total(), nil
}
