package postgres

import (
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in migration order.
var Models = []interface{}{
	&domain.User{},
	&domain.Book{},
	&domain.Translation{},
	&domain.Bookmark{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := Open(databaseURL, logLevel)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Open connects without migrating. Constraint violations are translated to
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Book:        NewBookRepository(db),
		Translation: NewTranslationRepository(db),
		Bookmark:    NewBookmarkRepository(db),
	}
}
