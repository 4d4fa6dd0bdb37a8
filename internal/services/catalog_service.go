// internal/services/catalog_service.go
package services

import (
	"fmt"
	"sort"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
	"github.com/webstore/backend/internal/utils"
)

type CatalogService struct {
	products store.ProductStore
}

type AddProductRequest struct {
	Name        string   `json:"name" validate:"required,min=4,max=255"`
	Price       float64  `json:"price" validate:"required,min=0.05"`
	Quantity    int      `json:"quantity" validate:"min=0"`
	Categories  []string `json:"categories" validate:"required,min=1,dive,required"`
	Description string   `json:"description,omitempty" validate:"omitempty,min=3"`
}

func NewCatalogService(products store.ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) AddProduct(req *AddProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation(fmt.Sprintf("validation failed: %v", err), map[string]interface{}{
			"name":  req.Name,
			"price": req.Price,
		})
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Categories:  req.Categories,
		Description: req.Description,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// IncreaseQuantity restocks a product. The delta must be positive.
func (s *CatalogService) IncreaseQuantity(name string, quantity int) (*models.Product, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("quantity can only be incremented by a positive integer", map[string]interface{}{
			"name":     name,
			"quantity": quantity,
		})
	}

	product, err := s.products.ByName(name)
	if err != nil {
		return nil, err
	}

	product.Quantity += quantity
	if err := s.products.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DecreaseQuantity sells quantity units outside a cart: on-hand stock
// drops and units_sold grows by the same amount, keeping their sum
// monotonic. The decrement is conditional at the store, so it cannot
// overshoot under concurrency.
func (s *CatalogService) DecreaseQuantity(name string, quantity int) (*models.Product, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("quantity can only be decremented by a positive integer", map[string]interface{}{
			"name":     name,
			"quantity": quantity,
		})
	}

	if err := s.products.DecrementStock(name, quantity); err != nil {
		if err == store.ErrInsufficientStock {
			return nil, apperrors.NewValidation("given value exceeds the quantity of the product", map[string]interface{}{
				"name":     name,
				"quantity": quantity,
			})
		}
		return nil, err
	}

	return s.products.ByName(name)
}

// ListProducts returns the catalog. Without a filter the result is
// ordered by popularity (units_sold descending); with a category filter
// the result is membership-filtered and deliberately left unsorted.
func (s *CatalogService) ListProducts(category string) ([]models.Product, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, err
	}

	if category == "" {
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitsSold > products[j].UnitsSold
		})
		return products, nil
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.HasCategory(category) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListCategories returns the distinct category strings across all
// products. Order is not significant.
func (s *CatalogService) ListCategories() ([]string, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		for _, c := range p.Categories {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	return categories, nil
}

func (s *CatalogService) FindProduct(name string) (*models.Product, error) {
	return s.products.ByName(name)
}

func (s *CatalogService) ProductCount() (int64, error) {
	return s.products.Count()
}
