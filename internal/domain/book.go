package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Book struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null"`
	Author      string                      `json:"author" gorm:"not null"`
	Description string                      `json:"description"`
	Language    string                      `json:"language"`
	CoverImage  string                      `json:"coverImage"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	OwnerID     uuid.UUID                   `json:"ownerId" gorm:"type:uuid;not null;index"`

	// Maintained in the same transaction as the rows they count.
	TranslationsCount int `json:"translationsCount" gorm:"not null;default:0"`
	BookmarksCount    int `json:"bookmarksCount" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
