// Package corpus keeps serialized snapshots of Python files in a SQLite
// database so that later runs can be checked against them.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicery/pyast-json/pkg/ast"
	"github.com/spicery/pyast-json/pkg/golden"
	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

// ErrNotRecorded is returned for a path that has no snapshot.
var ErrNotRecorded = errors.New("no snapshot recorded")

// Options controls how a snapshot is produced.
type Options struct {
	Mode       parser.Mode
	Serializer serializer.Options
}

// CheckResult is the outcome of re-serializing a recorded source.
type CheckResult struct {
	Path          string
	Recorded      string // The stored document
	Current       string // The document the serializer produces now
	Diff          string // Empty when the document is unchanged
	SourceChanged bool   // The file on disk no longer matches the recorded source
}

// Changed reports whether the document differs from the snapshot.
func (r *CheckResult) Changed() bool {
	return r.Diff != ""
}

// Corpus handles the snapshot database.
type Corpus struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time
}

// Option configures a Corpus.
type Option func(*Corpus)

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Corpus) {
		if l != nil {
			c.log = l
		}
	}
}

// Open opens or creates the database at dbPath. The schema is not migrated;
// call CheckMigration and Migrate as needed.
func Open(dbPath string, opts ...Option) (*Corpus, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	c := &Corpus{
		db:  db,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Migrate performs database migrations.
func (c *Corpus) Migrate() error {
	return Migrate(c.db)
}

// CheckMigration checks if the database schema is up to date.
func (c *Corpus) CheckMigration() (bool, error) {
	return CheckMigration(c.db)
}

// Close closes the database connection.
func (c *Corpus) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func render(path, source string, mode parser.Mode, options serializer.Options) (string, error) {
	root, err := parser.Parse(source, path, mode)
	if err != nil {
		return "", err
	}
	doc, err := serializer.New(ast.Python, options).Serialize(root)
	if err != nil {
		return "", err
	}
	return golden.Render(doc), nil
}

// Record reads the file at path and stores its source and snapshot,
// replacing any earlier recording.
func (c *Corpus) Record(path string, options Options) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.RecordSource(path, string(data), options)
}

// RecordSource is Record for source text that is already in memory.
func (c *Corpus) RecordSource(path, source string, options Options) (*Snapshot, error) {
	if options.Mode == "" {
		options.Mode = parser.ExecMode
	}
	document, err := render(path, source, options.Mode, options.Serializer)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	file := SourceFile{Path: path, Contents: source, Digest: digest(source)}
	snapshot := Snapshot{
		Path:              path,
		Mode:              string(options.Mode),
		TypeKey:           options.Serializer.TypeKey,
		ExcludeAttributes: options.Serializer.ExcludeAttributes,
		Document:          document,
		RecordedAt:        c.now().UTC(),
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&file).Error; err != nil {
			return fmt.Errorf("failed to save source file: %w", err)
		}
		if err := tx.Save(&snapshot).Error; err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("recorded snapshot", "path", path, "mode", snapshot.Mode, "bytes", len(document))
	return &snapshot, nil
}

// Lookup returns the snapshot recorded for path.
func (c *Corpus) Lookup(path string) (*Snapshot, error) {
	var snapshot Snapshot
	err := c.db.Where("path = ?", path).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotRecorded, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &snapshot, nil
}

// Source returns the source recorded for path.
func (c *Corpus) Source(path string) (*SourceFile, error) {
	var file SourceFile
	err := c.db.Where("path = ?", path).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotRecorded, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load source file: %w", err)
	}
	return &file, nil
}

// Paths lists the recorded paths in order.
func (c *Corpus) Paths() ([]string, error) {
	var paths []string
	if err := c.db.Model(&Snapshot{}).Order("path").Pluck("path", &paths).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return paths, nil
}

// Check serializes the recorded source again, with the recorded options, and
// diffs the result against the recorded document. It also notes whether the
// file on disk has moved on since it was recorded; an unreadable file counts
// as unchanged.
func (c *Corpus) Check(path string) (*CheckResult, error) {
	snapshot, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	file, err := c.Source(path)
	if err != nil {
		return nil, err
	}
	options := serializer.Options{TypeKey: snapshot.TypeKey, ExcludeAttributes: snapshot.ExcludeAttributes}
	document, err := render(path, file.Contents, parser.Mode(snapshot.Mode), options)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	result := &CheckResult{
		Path:     path,
		Recorded: snapshot.Document,
		Current:  document,
		Diff:     golden.CompareText(snapshot.Document, document),
	}
	if data, err := os.ReadFile(path); err == nil {
		result.SourceChanged = digest(string(data)) != file.Digest
	}
	c.log.Info("checked snapshot", "path", path, "changed", result.Changed(), "source_changed", result.SourceChanged)
	return result, nil
}

// CheckAll checks every recorded path in order.
func (c *Corpus) CheckAll() ([]*CheckResult, error) {
	paths, err := c.Paths()
	if err != nil {
		return nil, err
	}
	results := make([]*CheckResult, 0, len(paths))
	for _, path := range paths {
		result, err := c.Check(path)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Replace overwrites the stored document of path without touching its
// source.
func (c *Corpus) Replace(path, document string) error {
	result := c.db.Model(&Snapshot{}).Where("path = ?", path).Update("document", document)
	if result.Error != nil {
		return fmt.Errorf("failed to update snapshot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotRecorded, path)
	}
	return nil
}
