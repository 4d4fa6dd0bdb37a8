// internal/services/cart_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
)

type cartFixture struct {
	users    *store.MemoryUserStore
	products *store.MemoryProductStore
	cart     *CartService
	user     *models.User
}

func newCartFixture(t *testing.T, legacySoftFail bool) *cartFixture {
	t.Helper()

	users := store.NewMemoryUserStore()
	products := store.NewMemoryProductStore()

	user := &models.User{
		Username: "alice",
		Role:     models.UserRoleCustomer,
		Cart:     models.CartLines{},
	}
	require.NoError(t, user.SetPassword("Sup3rSecret!"))
	require.NoError(t, users.Create(user))

	return &cartFixture{
		users:    users,
		products: products,
		cart:     NewCartService(users, products, legacySoftFail),
		user:     user,
	}
}

func (f *cartFixture) addProduct(t *testing.T, name string, price float64, quantity int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Categories: []string{"misc"},
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func TestAddToCartCreatesLine(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	user, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)

	require.Len(t, user.Cart, 1)
	assert.Equal(t, "Widget", user.Cart[0].ProductName)
	assert.Equal(t, 1, user.Cart[0].Amount)
	assert.Equal(t, 2.50, user.Cart[0].Price)
}

func TestAddToCartNeverDuplicatesLines(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)
	user, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)

	require.Len(t, user.Cart, 1)
	assert.Equal(t, 2, user.Cart[0].Amount)
}

func TestAddToCartKeepsPriceSnapshot(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)

	// Second add at a different offered price must not rewrite the line.
	user, err := f.cart.AddToCart(f.user.ID, "Widget", 9.99)
	require.NoError(t, err)
	assert.Equal(t, 2.50, user.Cart[0].Price)
}

func TestAddToCartStockCap(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 2)

	for i := 0; i < 2; i++ {
		_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		require.NoError(t, err)
	}

	// Line amount equals on-hand quantity; further adds must not grow it.
	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	assert.True(t, apperrors.IsValidation(err))

	user, err := f.users.ByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Cart[0].Amount)
}

func TestAddToCartStockCapLegacySoftFail(t *testing.T) {
	f := newCartFixture(t, true)
	f.addProduct(t, "Widget", 2.50, 1)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)

	// Legacy mode: the capped add is a silent no-op.
	user, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Cart[0].Amount)
}

func TestAddToCartOutOfStock(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 0)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddToCartOutOfStockLegacySoftFail(t *testing.T) {
	f := newCartFixture(t, true)
	f.addProduct(t, "Widget", 2.50, 0)

	user, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)
	assert.Empty(t, user.Cart)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	f := newCartFixture(t, false)

	_, err := f.cart.AddToCart(f.user.ID, "Nonesuch", 2.50)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddToCartRejectsTinyPrice(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 0.01)
	assert.True(t, apperrors.IsValidation(err))
}

func TestConcurrentAddWithSingleUnit(t *testing.T) {
	f := newCartFixture(t, true)
	f.addProduct(t, "Widget", 2.50, 1)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		}()
	}
	wg.Wait()

	// At most one of the concurrent adds may grow the line.
	user, err := f.users.ByID(f.user.ID)
	require.NoError(t, err)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 1, user.Cart[0].Amount)
}

func TestRemoveFromCartDecrements(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	for i := 0; i < 3; i++ {
		_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		require.NoError(t, err)
	}

	user, err := f.cart.RemoveFromCart(f.user.ID, "Widget")
	require.NoError(t, err)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 2, user.Cart[0].Amount)
}

func TestRemoveFromCartDeletesLineAtOne(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)

	_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
	require.NoError(t, err)

	user, err := f.cart.RemoveFromCart(f.user.ID, "Widget")
	require.NoError(t, err)
	assert.Empty(t, user.Cart)
}

func TestRemoveFromCartUnknownLine(t *testing.T) {
	f := newCartFixture(t, false)

	_, err := f.cart.RemoveFromCart(f.user.ID, "Nonesuch")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCheckoutCommitsStockAndClearsCart(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 5)
	f.addProduct(t, "Gadget", 1.00, 3)

	for i := 0; i < 2; i++ {
		_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		require.NoError(t, err)
	}
	_, err := f.cart.AddToCart(f.user.ID, "Gadget", 1.00)
	require.NoError(t, err)

	result, err := f.cart.Checkout(f.user.ID)
	require.NoError(t, err)

	assert.Len(t, result.Purchased, 2)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.User.Cart)

	widget, err := f.products.ByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, 3, widget.Quantity)
	assert.Equal(t, 2, widget.UnitsSold)

	gadget, err := f.products.ByName("Gadget")
	require.NoError(t, err)
	assert.Equal(t, 2, gadget.Quantity)
	assert.Equal(t, 1, gadget.UnitsSold)
}

func TestCheckoutSkipsUnderstockedLine(t *testing.T) {
	f := newCartFixture(t, false)
	f.addProduct(t, "Widget", 2.50, 2)
	f.addProduct(t, "Gadget", 1.00, 1)

	for i := 0; i < 2; i++ {
		_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		require.NoError(t, err)
	}
	_, err := f.cart.AddToCart(f.user.ID, "Gadget", 1.00)
	require.NoError(t, err)

	// Stock drains between add and checkout.
	require.NoError(t, f.products.DecrementStock("Widget", 1))

	result, err := f.cart.Checkout(f.user.ID)
	require.NoError(t, err)

	// Widget line (amount 2, stock 1) is skipped and stays in the cart;
	// Gadget commits. Prior commits are not rolled back.
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "Widget", result.Skipped[0].ProductName)
	require.Len(t, result.Purchased, 1)
	assert.Equal(t, "Gadget", result.Purchased[0].ProductName)

	require.Len(t, result.User.Cart, 1)
	assert.Equal(t, "Widget", result.User.Cart[0].ProductName)
	assert.Equal(t, 2, result.User.Cart[0].Amount)

	widget, err := f.products.ByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, 1, widget.Quantity)
}

func TestCheckoutNeverDrivesQuantityNegative(t *testing.T) {
	f := newCartFixture(t, true)
	f.addProduct(t, "Widget", 2.50, 3)

	// Two users race to check out three units each; stock covers one.
	bob := &models.User{Username: "bob", Role: models.UserRoleCustomer, Cart: models.CartLines{}}
	require.NoError(t, bob.SetPassword("An0therSecret!"))
	require.NoError(t, f.users.Create(bob))

	for i := 0; i < 3; i++ {
		_, err := f.cart.AddToCart(f.user.ID, "Widget", 2.50)
		require.NoError(t, err)
		_, err = f.cart.AddToCart(bob.ID, "Widget", 2.50)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, uid := range []uuid.UUID{f.user.ID, bob.ID} {
		wg.Add(1)
		go func(uid uuid.UUID) {
			defer wg.Done()
			_, err := f.cart.Checkout(uid)
			assert.NoError(t, err)
		}(uid)
	}
	wg.Wait()

	widget, err := f.products.ByName("Widget")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, widget.Quantity, 0)
	assert.Equal(t, 3, widget.Quantity+widget.UnitsSold)
}

func TestCartTotalUsesSnapshotPrices(t *testing.T) {
	f := newCartFixture(t, false)

	f.user.Cart = models.CartLines{
		{ProductName: "Widget", Price: 2.50, Amount: 3},
		{ProductName: "Gadget", Price: 1.00, Amount: 1},
	}
	require.NoError(t, f.users.Save(f.user))

	total, err := f.cart.CartTotal(f.user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.50, total, 1e-9)
}
