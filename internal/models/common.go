// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

// CartLine is one entry in a user's cart: the product name, the price
// snapshot taken when the line was added, and how many units are in it.
type CartLine struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Amount      int     `json:"amount"`
}

// CartLines is the ordered cart sequence, stored as a JSONB column so the
// cart lives embedded on the user row rather than in a separate table.
type CartLines []CartLine

func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(CartLines{})
	}
	return json.Marshal(c)
}

func (c *CartLines) Scan(value interface{}) error {
	if value == nil {
		*c = CartLines{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("cart column is not a byte slice")
	}

	return json.Unmarshal(bytes, c)
}

// Find returns the index of the line for productName, or -1.
func (c CartLines) Find(productName string) int {
	for i, line := range c {
		if line.ProductName == productName {
			return i
		}
	}
	return -1
}

// Total sums price × amount over all lines using the snapshot prices.
func (c CartLines) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.Price * float64(line.Amount)
	}
	return total
}
