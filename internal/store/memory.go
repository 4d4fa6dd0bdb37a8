// internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
)

// MemoryProductStore keeps products in a mutex-guarded map. Used by the
// test suites and for running the server without Postgres.
type MemoryProductStore struct {
	mtx      sync.RWMutex
	products map[uuid.UUID]*models.Product
	byName   map[string]uuid.UUID
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[uuid.UUID]*models.Product),
		byName:   make(map[string]uuid.UUID),
	}
}

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Categories = append(cp.Categories[:0:0], cp.Categories...)
	cp.Comments = append(cp.Comments[:0:0], cp.Comments...)
	return &cp
}

func (s *MemoryProductStore) Create(p *models.Product) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.byName[p.Name]; exists {
		return apperrors.NewValidation("product name already taken", map[string]interface{}{"name": p.Name})
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	s.products[p.ID] = copyProduct(p)
	s.byName[p.Name] = p.ID
	return nil
}

func (s *MemoryProductStore) ByID(id uuid.UUID) (*models.Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("product", id.String())
	}
	return copyProduct(p), nil
}

func (s *MemoryProductStore) ByName(name string) (*models.Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, apperrors.NewNotFound("product", name)
	}
	return copyProduct(s.products[id]), nil
}

func (s *MemoryProductStore) All() ([]models.Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *copyProduct(p))
	}
	// Stable order for callers that do their own sorting on top.
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (s *MemoryProductStore) Save(p *models.Product) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	old, ok := s.products[p.ID]
	if !ok {
		return apperrors.NewNotFound("product", p.ID.String())
	}
	if old.Name != p.Name {
		delete(s.byName, old.Name)
		s.byName[p.Name] = p.ID
	}
	p.UpdatedAt = time.Now()
	s.products[p.ID] = copyProduct(p)
	return nil
}

func (s *MemoryProductStore) Count() (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryProductStore) DecrementStock(name string, amount int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	id, ok := s.byName[name]
	if !ok {
		return apperrors.NewNotFound("product", name)
	}
	p := s.products[id]
	if p.Quantity < amount {
		return ErrInsufficientStock
	}
	p.Quantity -= amount
	p.UnitsSold += amount
	p.UpdatedAt = time.Now()
	return nil
}

// MemoryUserStore keeps users in a mutex-guarded map.
type MemoryUserStore struct {
	mtx        sync.RWMutex
	users      map[uuid.UUID]*models.User
	byUsername map[string]uuid.UUID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:      make(map[uuid.UUID]*models.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Cart = append(cp.Cart[:0:0], cp.Cart...)
	return &cp
}

func (s *MemoryUserStore) Create(u *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.byUsername[u.Username]; exists {
		return apperrors.NewValidation("username already taken", map[string]interface{}{"username": u.Username})
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	s.users[u.ID] = copyUser(u)
	s.byUsername[u.Username] = u.ID
	return nil
}

func (s *MemoryUserStore) ByID(id uuid.UUID) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", id.String())
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) ByUsername(username string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, apperrors.NewNotFound("user", username)
	}
	return copyUser(s.users[id]), nil
}

func (s *MemoryUserStore) Save(u *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return apperrors.NewNotFound("user", u.ID.String())
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = copyUser(u)
	return nil
}

// MemoryCommentStore keeps comments in a mutex-guarded map.
type MemoryCommentStore struct {
	mtx      sync.RWMutex
	comments map[uuid.UUID]*models.Comment
	seq      int64
}

func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func (s *MemoryCommentStore) Create(c *models.Comment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	// Monotonic timestamps keep insertion order observable even when two
	// comments land within clock resolution.
	s.seq++
	c.CreatedAt = time.Now().Add(time.Duration(s.seq))
	c.UpdatedAt = c.CreatedAt

	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s *MemoryCommentStore) ByID(id uuid.UUID) (*models.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.NewNotFound("comment", id.String())
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryCommentStore) ByProduct(productID uuid.UUID) ([]models.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var comments []models.Comment
	for _, c := range s.comments {
		if c.ProductID == productID {
			comments = append(comments, *c)
		}
	}
	sortCommentsByCreation(comments)
	return comments, nil
}

func (s *MemoryCommentStore) All() ([]models.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	comments := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		comments = append(comments, *c)
	}
	sortCommentsByCreation(comments)
	return comments, nil
}

func (s *MemoryCommentStore) Delete(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.comments[id]; !ok {
		return apperrors.NewNotFound("comment", id.String())
	}
	delete(s.comments, id)
	return nil
}

func sortCommentsByCreation(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
