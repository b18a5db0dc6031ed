package corpus

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SourceFile stores the Python source a snapshot was taken from.
type SourceFile struct {
	Path     string `gorm:"primaryKey"`
	Contents string
	Digest   string
}

// Snapshot stores the serialized tree of one source file together with the
// options it was produced with.
type Snapshot struct {
	Path              string `gorm:"primaryKey"`
	Mode              string
	TypeKey           string
	ExcludeAttributes bool
	Document          string
	RecordedAt        time.Time
}

// migrationOptions keeps the corpus schema history in its own table.
var migrationOptions = &gormigrate.Options{
	TableName:                 "corpus_migrations",
	IDColumnName:              "id",
	IDColumnSize:              255,
	UseTransaction:            true,
	ValidateUnknownMigrations: true,
}

// migrations lists the schema versions of a corpus, oldest first.
func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610190001",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&SourceFile{}, &Snapshot{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&Snapshot{}, &SourceFile{})
			},
		},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return gormigrate.New(db, migrationOptions, migrations()).Migrate()
}

// CheckMigration reports whether every known migration has been applied.
// A database without a history table has had none.
func CheckMigration(db *gorm.DB) (bool, error) {
	var applied []string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(migrationOptions.TableName).
		Pluck(migrationOptions.IDColumnName, &applied).Error
	if err != nil {
		return false, nil
	}
	done := make(map[string]bool, len(applied))
	for _, id := range applied {
		done[id] = true
	}
	for _, m := range migrations() {
		if !done[m.ID] {
			return false, nil
		}
	}
	return true, nil
}
