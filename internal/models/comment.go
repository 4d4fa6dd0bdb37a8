// internal/models/comment.go
package models

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Username  string    `json:"user" gorm:"size:50;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Grade     int       `json:"grade" gorm:"not null"`
}
