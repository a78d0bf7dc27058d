package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark points at exactly one book or one translation. A user holds at
// most one bookmark per target; the unique indexes below enforce that.
type Bookmark struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:idx_bookmarks_user_book;uniqueIndex:idx_bookmarks_user_translation"`
	BookID        *uint     `json:"bookId" gorm:"uniqueIndex:idx_bookmarks_user_book;check:chk_bookmarks_single_target,(book_id IS NULL) <> (translation_id IS NULL)"`
	TranslationID *uint     `json:"translationId" gorm:"uniqueIndex:idx_bookmarks_user_translation"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`

	// Relations
	User        *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Book        *Book        `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Translation *Translation `json:"translation,omitempty" gorm:"foreignKey:TranslationID;constraint:OnDelete:CASCADE"`
}

type TargetKind string

const (
	TargetBook        TargetKind = "book"
	TargetTranslation TargetKind = "translation"
)

// BookmarkTarget is the single thing a bookmark refers to.
type BookmarkTarget struct {
	Kind TargetKind
	ID   uint
}

func BookTarget(id uint) BookmarkTarget {
	return BookmarkTarget{Kind: TargetBook, ID: id}
}

func TranslationTarget(id uint) BookmarkTarget {
	return BookmarkTarget{Kind: TargetTranslation, ID: id}
}

// ParseBookmarkTarget collapses the two optional request ids into a target.
// Zero ids count as absent.
func ParseBookmarkTarget(bookID, translationID *uint) (BookmarkTarget, error) {
	hasBook := bookID != nil && *bookID != 0
	hasTranslation := translationID != nil && *translationID != 0

	switch {
	case hasBook && hasTranslation:
		return BookmarkTarget{}, ErrAmbiguousTarget
	case hasBook:
		return BookTarget(*bookID), nil
	case hasTranslation:
		return TranslationTarget(*translationID), nil
	default:
		return BookmarkTarget{}, ErrMissingTarget
	}
}

// NewBookmark builds an unsaved bookmark for userID pointing at target.
func NewBookmark(userID uuid.UUID, target BookmarkTarget) (*Bookmark, error) {
	b := &Bookmark{UserID: userID}
	id := target.ID

	switch target.Kind {
	case TargetBook:
		b.BookID = &id
	case TargetTranslation:
		b.TranslationID = &id
	default:
		return nil, ErrUnknownTarget
	}
	return b, nil
}

// Target reports what the bookmark points at. A row violating the single
// target rule reports ErrUnknownTarget.
func (b *Bookmark) Target() (BookmarkTarget, error) {
	switch {
	case b.BookID != nil && b.TranslationID == nil:
		return BookTarget(*b.BookID), nil
	case b.TranslationID != nil && b.BookID == nil:
		return TranslationTarget(*b.TranslationID), nil
	default:
		return BookmarkTarget{}, ErrUnknownTarget
	}
}

// Column returns the bookmarks column holding the target id.
func (t BookmarkTarget) Column() string {
	switch t.Kind {
	case TargetBook:
		return "book_id"
	case TargetTranslation:
		return "translation_id"
	default:
		return ""
	}
}
