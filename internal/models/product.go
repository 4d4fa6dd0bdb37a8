// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int            `json:"quantity" gorm:"not null;default:0"`
	Categories   pq.StringArray `json:"categories" gorm:"type:text[];not null"`
	Description  string         `json:"description,omitempty" gorm:"type:text"`
	UnitsSold    int            `json:"units_sold" gorm:"not null;default:0"`
	AverageGrade float64        `json:"average_grade" gorm:"type:decimal(3,1);default:0"`

	// Relationships
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:ProductID"`
}

// HasCategory reports whether the product's category set contains c.
func (p *Product) HasCategory(c string) bool {
	for _, cat := range p.Categories {
		if cat == c {
			return true
		}
	}
	return false
}
