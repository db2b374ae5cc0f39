package page

import (
	"context"
	"database/sql"
	"errors"

	"tradecapacity/internal/adapters/storage"
	domain "tradecapacity/internal/domain/page"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the page of a view.
// PRE: view is non-empty
// POST: returns domain.ErrNotFound when the view has no content
func (s *SQLiteStore) Get(ctx context.Context, view string) (domain.Page, error) {
	var p domain.Page
	err := s.db.QueryRowContext(ctx,
		`SELECT view, title, summary, body FROM page WHERE view = ?`, view).
		Scan(&p.View, &p.Title, &p.Summary, &p.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Page{}, domain.ErrNotFound
	}
	return p, err
}

// Save inserts or updates a page.
// POST: the page for p.View holds p
func (s *SQLiteStore) Save(ctx context.Context, p domain.Page) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page (view, title, summary, body) VALUES (?, ?, ?, ?)
		 ON CONFLICT(view) DO UPDATE SET title=excluded.title, summary=excluded.summary, body=excluded.body`,
		p.View, p.Title, p.Summary, p.Body)
	return err
}
