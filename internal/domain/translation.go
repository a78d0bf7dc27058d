package domain

import (
	"time"

	"github.com/google/uuid"
)

// Translation always belongs to exactly one book and one translator.
type Translation struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BookID         uint      `json:"bookId" gorm:"not null;index"`
	TranslatorID   uuid.UUID `json:"translatorId" gorm:"type:uuid;not null;index"`
	OriginalText   string    `json:"originalText" gorm:"type:text;not null"`
	TranslatedText string    `json:"translatedText" gorm:"type:text;not null"`
	SourceLanguage string    `json:"sourceLanguage" gorm:"not null"`
	TargetLanguage string    `json:"targetLanguage" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	Book       *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Translator *User `json:"translator,omitempty" gorm:"foreignKey:TranslatorID;constraint:OnDelete:CASCADE"`
}
