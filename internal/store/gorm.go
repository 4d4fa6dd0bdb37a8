// internal/store/gorm.go
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
)

// GormProductStore backs ProductStore with Postgres through GORM.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) Create(p *models.Product) error {
	if err := s.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewValidation("product name already taken", map[string]interface{}{"name": p.Name})
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *GormProductStore) ByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Comments").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *GormProductStore) ByName(name string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Comments").Where("name = ?", name).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product", name)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *GormProductStore) All() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Comments").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *GormProductStore) Save(p *models.Product) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *GormProductStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// DecrementStock runs a single conditional UPDATE guarded by
// quantity >= amount, so two concurrent checkouts against the same
// product cannot both pass the stock check.
func (s *GormProductStore) DecrementStock(name string, amount int) error {
	res := s.db.Model(&models.Product{}).
		Where("name = ? AND quantity >= ?", name, amount).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"units_sold": gorm.Expr("units_sold + ?", amount),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFound("product", name)
		}
		return ErrInsufficientStock
	}
	return nil
}

// GormUserStore backs UserStore with Postgres through GORM.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewValidation("username already taken", map[string]interface{}{"username": u.Username})
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) ByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", username)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) Save(u *models.User) error {
	if err := s.db.Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GormCommentStore backs CommentStore with Postgres through GORM.
type GormCommentStore struct {
	db *gorm.DB
}

func NewGormCommentStore(db *gorm.DB) *GormCommentStore {
	return &GormCommentStore{db: db}
}

func (s *GormCommentStore) Create(c *models.Comment) error {
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *GormCommentStore) ByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("comment", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &comment, nil
}

func (s *GormCommentStore) ByProduct(productID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

func (s *GormCommentStore) All() ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

func (s *GormCommentStore) Delete(id uuid.UUID) error {
	res := s.db.Where("id = ?", id).Delete(&models.Comment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("comment", id.String())
	}
	return nil
}
