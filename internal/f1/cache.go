package f1

import (
	"bytes"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/apex-data/lap.report/internal/httputil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Cache is an on-disk store of API response bodies keyed by request URL.
// Open it explicitly and pass it to NewClient via WithCache; there is no
// process-wide cache enabled at load time.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the sqlite cache at path and brings its
// schema up to date.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache %s: %w", path, err)
	}

	return &Cache{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// Note: not closed because that would close the underlying DB connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached body for url, with ok reporting whether an
// entry exists.
func (c *Cache) Get(url string) (body []byte, ok bool, err error) {
	row := c.db.QueryRow("SELECT body FROM responses WHERE url = ?", url)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return body, true, nil
}

// Put stores (or replaces) the cached body for url.
func (c *Cache) Put(url string, body []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO responses (id, url, body) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), url, body)
	return err
}

// EntryCount returns the number of cached responses.
func (c *Cache) EntryCount() (int, error) {
	var n int
	err := c.db.QueryRow("SELECT COUNT(*) FROM responses").Scan(&n)
	return n, err
}

// Wrap returns an HTTP client that serves successful GETs from the cache
// and writes fresh 200 responses back to it. Non-GET requests and
// non-200 responses pass through untouched.
func (c *Cache) Wrap(next httputil.HTTPClient) httputil.HTTPClient {
	return &cachingClient{cache: c, next: next}
}

type cachingClient struct {
	cache *Cache
	next  httputil.HTTPClient
}

func (cc *cachingClient) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return cc.next.Do(req)
	}

	key := req.URL.String()
	if body, ok, err := cc.cache.Get(key); err != nil {
		log.Printf("cache read for %s failed, fetching: %v", key, err)
	} else if ok {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	resp, err := cc.next.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", key, err)
	}
	if err := cc.cache.Put(key, body); err != nil {
		log.Printf("cache write for %s failed: %v", key, err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
