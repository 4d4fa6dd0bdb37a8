// internal/services/comment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
)

type commentFixture struct {
	products *store.MemoryProductStore
	comments *store.MemoryCommentStore
	service  *CommentService
	product  *models.Product
	author   *models.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	products := store.NewMemoryProductStore()
	comments := store.NewMemoryCommentStore()
	aggregator := NewRatingAggregator(products, comments)

	product := &models.Product{
		Name:       "Widget",
		Price:      2.50,
		Quantity:   5,
		Categories: []string{"tools"},
	}
	require.NoError(t, products.Create(product))

	author := &models.User{Username: "alice", Role: models.UserRoleCustomer, Cart: models.CartLines{}}
	require.NoError(t, author.SetPassword("Sup3rSecret!"))

	users := store.NewMemoryUserStore()
	require.NoError(t, users.Create(author))

	return &commentFixture{
		products: products,
		comments: comments,
		service:  NewCommentService(comments, products, aggregator),
		product:  product,
		author:   author,
	}
}

func (f *commentFixture) add(t *testing.T, grade int) *models.Comment {
	t.Helper()

	comment, err := f.service.AddComment(f.author, &AddCommentRequest{
		ProductID: f.product.ID.String(),
		Content:   "solid product",
		Grade:     grade,
	})
	require.NoError(t, err)
	return comment
}

func TestAverageGradeAfterAdds(t *testing.T) {
	f := newCommentFixture(t)

	for _, grade := range []int{4, 5, 3} {
		f.add(t, grade)
	}

	product, err := f.products.ByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.AverageGrade)
}

func TestAverageGradeRoundsHalfUp(t *testing.T) {
	f := newCommentFixture(t)

	// mean(4,5) = 4.5 -> 4.5; mean(4,5,5) = 4.666… -> 4.7
	f.add(t, 4)
	f.add(t, 5)
	product, err := f.products.ByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, product.AverageGrade)

	f.add(t, 5)
	product, err = f.products.ByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.7, product.AverageGrade)
}

func TestAddCommentValidation(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.AddComment(f.author, &AddCommentRequest{
		ProductID: f.product.ID.String(),
		Content:   "",
		Grade:     3,
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.service.AddComment(f.author, &AddCommentRequest{
		ProductID: f.product.ID.String(),
		Content:   "off the scale",
		Grade:     6,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestRemoveCommentRoundTrip(t *testing.T) {
	f := newCommentFixture(t)

	f.add(t, 4)
	f.add(t, 5)

	before, err := f.products.ByID(f.product.ID)
	require.NoError(t, err)

	comment := f.add(t, 1)

	product, err := f.service.RemoveComment(f.author, comment.ID)
	require.NoError(t, err)

	// Comment set and average grade return to their pre-add state.
	remaining, err := f.comments.ByProduct(f.product.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
	assert.Equal(t, before.AverageGrade, product.AverageGrade)
}

func TestRemoveCommentRecomputesToZeroWhenLastGoes(t *testing.T) {
	f := newCommentFixture(t)

	comment := f.add(t, 5)
	product, err := f.service.RemoveComment(f.author, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, product.AverageGrade)
}

func TestRemoveCommentAuthorOnly(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.add(t, 4)

	stranger := &models.User{Username: "mallory", Role: models.UserRoleCustomer, Cart: models.CartLines{}}
	require.NoError(t, stranger.SetPassword("N0tTheAuthor!"))

	_, err := f.service.RemoveComment(stranger, comment.ID)
	assert.True(t, apperrors.IsAuthorization(err))

	// The comment survives the rejected removal.
	remaining, err := f.comments.ByProduct(f.product.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestListCommentsByProduct(t *testing.T) {
	f := newCommentFixture(t)
	f.add(t, 4)
	f.add(t, 5)

	comments, err := f.service.ListComments("Widget")
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, err = f.service.ListComments("Nonesuch")
	assert.True(t, apperrors.IsNotFound(err))
}
