// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/store"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *store.MemoryProductStore) {
	t.Helper()
	products := store.NewMemoryProductStore()
	return NewCatalogService(products), products
}

func seedCatalog(t *testing.T, svc *CatalogService) {
	t.Helper()

	fixtures := []AddProductRequest{
		{Name: "Widget", Price: 2.50, Quantity: 5, Categories: []string{"tools", "home"}},
		{Name: "Gadget", Price: 1.00, Quantity: 3, Categories: []string{"tools"}},
		{Name: "Gizmo", Price: 4.00, Quantity: 7, Categories: []string{"electronics"}},
	}
	for i := range fixtures {
		_, err := svc.AddProduct(&fixtures[i])
		require.NoError(t, err)
	}
}

func TestAddProductValidation(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	cases := []struct {
		name string
		req  AddProductRequest
	}{
		{"short name", AddProductRequest{Name: "abc", Price: 1, Quantity: 1, Categories: []string{"x"}}},
		{"tiny price", AddProductRequest{Name: "Widget", Price: 0.01, Quantity: 1, Categories: []string{"x"}}},
		{"no categories", AddProductRequest{Name: "Widget", Price: 1, Quantity: 1, Categories: []string{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddProduct(&tc.req)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestAddProductDuplicateName(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	seedCatalog(t, svc)

	_, err := svc.AddProduct(&AddProductRequest{
		Name: "Widget", Price: 1, Quantity: 1, Categories: []string{"x"},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestListProductsSortsByPopularityWhenUnfiltered(t *testing.T) {
	svc, products := newCatalogFixture(t)
	seedCatalog(t, svc)

	require.NoError(t, products.DecrementStock("Gadget", 3))
	require.NoError(t, products.DecrementStock("Gizmo", 1))

	list, err := svc.ListProducts("")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Gadget", list[0].Name)
	assert.Equal(t, "Gizmo", list[1].Name)
	assert.Equal(t, "Widget", list[2].Name)
}

func TestListProductsFilteredIsNotResorted(t *testing.T) {
	svc, products := newCatalogFixture(t)
	seedCatalog(t, svc)

	// Gadget outsells Widget, but the filtered listing keeps insertion
	// order: filtering deliberately skips the popularity sort.
	require.NoError(t, products.DecrementStock("Gadget", 3))

	list, err := svc.ListProducts("tools")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Widget", list[0].Name)
	assert.Equal(t, "Gadget", list[1].Name)
}

func TestListCategoriesDistinct(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	seedCatalog(t, svc)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tools", "home", "electronics"}, categories)
}

func TestIncreaseQuantity(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	seedCatalog(t, svc)

	product, err := svc.IncreaseQuantity("Widget", 10)
	require.NoError(t, err)
	assert.Equal(t, 15, product.Quantity)

	_, err = svc.IncreaseQuantity("Widget", 0)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.IncreaseQuantity("Nonesuch", 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDecreaseQuantity(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	seedCatalog(t, svc)

	product, err := svc.DecreaseQuantity("Widget", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)
	assert.Equal(t, 3, product.UnitsSold)

	_, err = svc.DecreaseQuantity("Widget", 0)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.DecreaseQuantity("Widget", 99)
	assert.True(t, apperrors.IsValidation(err))
}

func TestFindProductAndCount(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	seedCatalog(t, svc)

	product, err := svc.FindProduct("Gizmo")
	require.NoError(t, err)
	assert.Equal(t, 4.00, product.Price)

	count, err := svc.ProductCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = svc.FindProduct("Nonesuch")
	assert.True(t, apperrors.IsNotFound(err))
}
