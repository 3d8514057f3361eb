// Package localestore is the GORM-backed persistence layer behind
// internal/locale.Fetcher: a cache of parsed locale documents keyed by
// language tag, plus a directory-scanning discoverer for on-disk
// locale/style files. Connect opens either a local SQLite file or a
// shared libsql cache, and DiscoverLocaleFiles walks a directory tree
// for locale/style files using doublestar glob matching.
package localestore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/locale"
	"github.com/citeproc-go/citeproc/internal/localexml"
)

// LocaleDocument is the GORM model caching one fetched/parsed locale
// document, keyed by its language tag.
type LocaleDocument struct {
	Tag       string `gorm:"primaryKey;type:varchar(20)"`
	RawXML    string `gorm:"type:text"`
	TermsJSON datatypes.JSON `gorm:"type:jsonb"`
	FetchedAt time.Time `gorm:"autoCreateTime"`
}

// TableName pins the table name independent of Go struct naming.
func (LocaleDocument) TableName() string { return "locale_documents" }

// Connect opens the locale cache database. dsn is either a filesystem
// path to a local SQLite file or a "libsql://" URL for a shared remote
// cache.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("localestore: create cache directory: %w", err)
			}
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("CITEPROC_LIBSQL_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("localestore: create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("localestore: connect: %w", err)
	}

	if err := db.AutoMigrate(&LocaleDocument{}); err != nil {
		return nil, fmt.Errorf("localestore: migrate: %w", err)
	}
	return db, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// Cache wraps a *gorm.DB as an internal/locale.Fetcher backed by the
// locale_documents table, falling through to a directory of locale
// files (and, failing that, locale.ErrLocaleNotFound) on a cache miss.
type Cache struct {
	db       *gorm.DB
	localeDir string
}

// NewCache returns a Cache reading/writing through db, optionally
// scanning localeDir for on-disk XML files not yet cached.
func NewCache(db *gorm.DB, localeDir string) *Cache {
	return &Cache{db: db, localeDir: localeDir}
}

// FetchLocale implements internal/locale.Fetcher: it tries the cache
// table first, then the configured locale directory, caching newly
// parsed documents for subsequent calls.
func (c *Cache) FetchLocale(ctx context.Context, tag csl.LanguageTag) (*csl.LocaleDocument, error) {
	var row LocaleDocument
	err := c.db.WithContext(ctx).First(&row, "tag = ?", tag.String()).Error
	switch {
	case err == nil:
		return localexml.Decode(strings.NewReader(row.RawXML))
	case err != gorm.ErrRecordNotFound:
		return nil, fmt.Errorf("localestore: query cache: %w", err)
	}

	path, ok, err := findLocaleFile(c.localeDir, tag)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, locale.ErrLocaleNotFound
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("localestore: read %s: %w", path, err)
	}
	doc, err := localexml.Decode(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("localestore: parse %s: %w", path, err)
	}

	if err := c.db.WithContext(ctx).Create(&LocaleDocument{Tag: tag.String(), RawXML: string(raw)}).Error; err != nil {
		return nil, fmt.Errorf("localestore: cache %s: %w", tag, err)
	}
	return doc, nil
}

func findLocaleFile(dir string, tag csl.LanguageTag) (string, bool, error) {
	if dir == "" {
		return "", false, nil
	}
	want := "locales-" + tag.String() + ".xml"
	files, err := DiscoverLocaleFiles(dir)
	if err != nil {
		return "", false, err
	}
	for _, f := range files {
		if filepath.Base(f) == want {
			return f, true, nil
		}
	}
	return "", false, nil
}

// localeFilePatterns are the doublestar glob patterns a locale/style
// directory tree is scanned against.
var localeFilePatterns = []string{"locales-*.xml", "*.csl"}

// DiscoverLocaleFiles walks root and returns every file matching the
// locale/style glob patterns.
func DiscoverLocaleFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		for _, pattern := range localeFilePatterns {
			if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("localestore: scan %s: %w", root, err)
	}
	return out, nil
}
