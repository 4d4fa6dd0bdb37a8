// internal/services/comment_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
	"github.com/webstore/backend/internal/utils"
)

type CommentService struct {
	comments   store.CommentStore
	products   store.ProductStore
	aggregator *RatingAggregator
}

type AddCommentRequest struct {
	ProductID string `json:"product" validate:"required"`
	Content   string `json:"content" validate:"required,min=1"`
	Grade     int    `json:"grade" validate:"required,min=1,max=5"`
}

func NewCommentService(comments store.CommentStore, products store.ProductStore, aggregator *RatingAggregator) *CommentService {
	return &CommentService{
		comments:   comments,
		products:   products,
		aggregator: aggregator,
	}
}

// AddComment attaches a graded comment to a product and recomputes the
// product's average grade.
func (s *CommentService) AddComment(actor *models.User, req *AddCommentRequest) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation(fmt.Sprintf("validation failed: %v", err), map[string]interface{}{
			"product": req.ProductID,
			"grade":   req.Grade,
		})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid product ID", map[string]interface{}{"product": req.ProductID})
	}

	product, err := s.products.ByID(productID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    actor.ID,
		Username:  actor.Username,
		ProductID: product.ID,
		Content:   req.Content,
		Grade:     req.Grade,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if _, err := s.aggregator.Recompute(product.ID); err != nil {
		return nil, err
	}

	return comment, nil
}

// RemoveComment deletes a comment. Only the comment's own author may
// remove it; the product's average grade is recomputed afterwards.
func (s *CommentService) RemoveComment(actor *models.User, commentID uuid.UUID) (*models.Product, error) {
	comment, err := s.comments.ByID(commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != actor.ID {
		return nil, apperrors.NewAuthorization("only the comment author may remove it")
	}

	if err := s.comments.Delete(commentID); err != nil {
		return nil, err
	}

	if _, err := s.aggregator.Recompute(comment.ProductID); err != nil {
		return nil, err
	}

	return s.products.ByID(comment.ProductID)
}

// ListComments returns all comments, or the comments of one product when
// productName is given.
func (s *CommentService) ListComments(productName string) ([]models.Comment, error) {
	if productName == "" {
		return s.comments.All()
	}

	product, err := s.products.ByName(productName)
	if err != nil {
		return nil, err
	}
	return s.comments.ByProduct(product.ID)
}
