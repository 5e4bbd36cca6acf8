// Package cache implements the offline cache manager: a best-effort local
// store of previously fetched recipes and search result sets, kept in a
// SQLite record store keyed by id. The cache is supplementary, never
// authoritative. Callers must treat absence and failure alike as a cache
// miss and fall back to the network.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

// searchKeyPrefix namespaces cached search result sets inside the shared
// record store.
const searchKeyPrefix = "search_"

// DefaultMaxAge is how long a cache entry stays eligible before a sweep
// removes it.
const DefaultMaxAge = 7 * 24 * time.Hour

// CachedRecipe is a recipe copy augmented with cache metadata.
type CachedRecipe struct {
	recipe.Recipe
	CachedAt  time.Time `json:"cachedAt"`
	IsOffline bool      `json:"isOffline"`
}

// CachedSearchResultSet is a cached page of search results for one query.
type CachedSearchResultSet struct {
	Query     string                `json:"query"`
	Results   []recipe.SearchResult `json:"results"`
	CachedAt  time.Time             `json:"cachedAt"`
	IsOffline bool                  `json:"isOffline"`
}

// Manager wraps the cache database. The database is opened lazily on first
// use; repeated opens reuse the same handle.
type Manager struct {
	dbPath   string
	probeURL string

	initOnce sync.Once
	db       *sql.DB
	initErr  error

	now func() time.Time
}

// NewManager creates a Manager for the given database path. The database is
// not opened until the first cache operation.
func NewManager(dbPath, probeURL string) *Manager {
	return &Manager{
		dbPath:   dbPath,
		probeURL: probeURL,
		now:      time.Now,
	}
}

func (m *Manager) ensureDB() (*sql.DB, error) {
	m.initOnce.Do(func() {
		m.db, m.initErr = openDB(m.dbPath)
	})
	if m.initErr != nil {
		return nil, fmt.Errorf("cache database unavailable: %w", m.initErr)
	}
	return m.db, nil
}

// Close closes the database handle if it was ever opened.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Manager) put(ctx context.Context, key string, payload any, cachedAt time.Time) error {
	db, err := m.ensureDB()
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, data, cached_at_ms) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, cached_at_ms = excluded.cached_at_ms`,
		key, string(data), cachedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// get returns the raw payload for a key, or ("", false, nil) on a miss.
func (m *Manager) get(ctx context.Context, key string) (string, bool, error) {
	db, err := m.ensureDB()
	if err != nil {
		return "", false, err
	}

	var data string
	err = db.QueryRowContext(ctx, `SELECT data FROM cache_entries WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return data, true, nil
}

// CacheRecipe stores a copy of the recipe augmented with the cache
// timestamp and offline flag, overwriting any prior entry with the same id.
func (m *Manager) CacheRecipe(ctx context.Context, rec recipe.Recipe) error {
	entry := CachedRecipe{
		Recipe:    rec,
		CachedAt:  m.now().UTC(),
		IsOffline: true,
	}
	return m.put(ctx, rec.ID.String(), entry, entry.CachedAt)
}

// CacheSearchResults stores the result set for a query, overwriting any
// prior entry for that query.
func (m *Manager) CacheSearchResults(ctx context.Context, query string, results []recipe.SearchResult) error {
	entry := CachedSearchResultSet{
		Query:     query,
		Results:   results,
		CachedAt:  m.now().UTC(),
		IsOffline: true,
	}
	return m.put(ctx, searchKeyPrefix+query, entry, entry.CachedAt)
}

// CachedRecipe retrieves a cached recipe by id, or (nil, nil) on a miss.
func (m *Manager) CachedRecipe(ctx context.Context, id string) (*CachedRecipe, error) {
	data, ok, err := m.get(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	var entry CachedRecipe
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recipe %s: %w", id, err)
	}
	return &entry, nil
}

// CachedSearchResults retrieves the cached result set for a query, or
// (nil, nil) on a miss.
func (m *Manager) CachedSearchResults(ctx context.Context, query string) (*CachedSearchResultSet, error) {
	data, ok, err := m.get(ctx, searchKeyPrefix+query)
	if err != nil || !ok {
		return nil, err
	}

	var entry CachedSearchResultSet
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached results for %q: %w", query, err)
	}
	return &entry, nil
}

// AllCachedRecipes returns every cached recipe regardless of age. Cached
// search result sets are excluded by their key prefix.
func (m *Manager) AllCachedRecipes(ctx context.Context) ([]CachedRecipe, error) {
	db, err := m.ensureDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT data FROM cache_entries WHERE key NOT LIKE ? ESCAPE '\' ORDER BY cached_at_ms DESC`,
		strings.ReplaceAll(searchKeyPrefix, "_", `\_`)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list cached recipes: %w", err)
	}
	defer rows.Close()

	var recipes []CachedRecipe
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan cached recipe: %w", err)
		}
		var entry CachedRecipe
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			// A corrupt record should not hide the rest of the cache.
			continue
		}
		recipes = append(recipes, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached recipes: %w", err)
	}
	return recipes, nil
}

// ClearOldCache deletes every record cached earlier than now minus maxAge
// and returns the number removed. A non-positive maxAge falls back to
// DefaultMaxAge.
func (m *Manager) ClearOldCache(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	db, err := m.ensureDB()
	if err != nil {
		return 0, err
	}

	cutoff := m.now().Add(-maxAge).UnixMilli()
	res, err := db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cached_at_ms < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep cache: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept cache entries: %w", err)
	}
	return removed, nil
}
