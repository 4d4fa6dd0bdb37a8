// internal/services/rating.go
package services

import (
	"math"

	"github.com/google/uuid"

	"github.com/webstore/backend/internal/store"
)

// RatingAggregator recomputes a product's average comment grade. It runs
// synchronously after every mutation of the comment set, add and remove
// alike.
type RatingAggregator struct {
	products store.ProductStore
	comments store.CommentStore
}

func NewRatingAggregator(products store.ProductStore, comments store.CommentStore) *RatingAggregator {
	return &RatingAggregator{
		products: products,
		comments: comments,
	}
}

// Recompute sets average_grade to the mean of all comment grades for the
// product, rounded half-up to one decimal place. With no comments left
// the grade resets to zero.
func (a *RatingAggregator) Recompute(productID uuid.UUID) (float64, error) {
	comments, err := a.comments.ByProduct(productID)
	if err != nil {
		return 0, err
	}

	product, err := a.products.ByID(productID)
	if err != nil {
		return 0, err
	}

	var grade float64
	if len(comments) > 0 {
		var sum int
		for _, c := range comments {
			sum += c.Grade
		}
		mean := float64(sum) / float64(len(comments))
		grade = math.Round(mean*10) / 10
	}

	product.AverageGrade = grade
	if err := a.products.Save(product); err != nil {
		return 0, err
	}
	return grade, nil
}
