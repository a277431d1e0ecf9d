// Package store persists ingested documents and finished deck plans in
// SQLite. The content hash on each document drives change detection:
// converting an unchanged file returns the cached deck instead of
// re-running the pipeline.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a document or deck does not exist.
var ErrNotFound = errors.New("store: not found")

// Document statuses.
const (
	StatusPending   = "pending"
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// Document represents a row in the documents table.
type Document struct {
	ID           int64  `json:"id"`
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	Format       string `json:"format"`
	ContentHash  string `json:"content_hash"`
	IngestMethod string `json:"ingest_method"`
	Title        string `json:"title,omitempty"`
	Status       string `json:"status"`
	Metadata     string `json:"metadata,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Deck represents a row in the decks table. Plan and Sections hold the
// serialized pipeline output; the store does not interpret them.
type Deck struct {
	ID          string `json:"id"`
	DocumentID  int64  `json:"document_id"`
	Title       string `json:"title"`
	Plan        string `json:"plan"`
	Sections    string `json:"sections"`
	SlideCount  int    `json:"slide_count"`
	BulletCount int    `json:"bullet_count"`
	CreatedAt   string `json:"created_at"`
}

// Store wraps the SQLite database for all paperdeck persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}

	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// --- Document operations ---

// UpsertDocument inserts or updates a document record keyed by path.
// Returns the document ID.
func (s *Store) UpsertDocument(ctx context.Context, doc Document) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (path, filename, format, content_hash, ingest_method, title, status, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			filename = excluded.filename,
			format = excluded.format,
			content_hash = excluded.content_hash,
			ingest_method = excluded.ingest_method,
			title = excluded.title,
			status = excluded.status,
			metadata = excluded.metadata,
			updated_at = CURRENT_TIMESTAMP
	`, doc.Path, doc.Filename, doc.Format, doc.ContentHash, doc.IngestMethod, doc.Title, doc.Status, doc.Metadata)
	if err != nil {
		return 0, err
	}

	// last_insert_rowid() is stale on the UPDATE branch of the upsert,
	// so the id must be resolved by path in both cases.
	var id int64
	row := s.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE path = ?", doc.Path)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetDocumentByPath retrieves a document by its file path.
func (s *Store) GetDocumentByPath(ctx context.Context, path string) (*Document, error) {
	doc := &Document{}
	var title, metadata sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, path, filename, format, content_hash, ingest_method, title, status, metadata, created_at, updated_at
		FROM documents WHERE path = ?
	`, path).Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Format,
		&doc.ContentHash, &doc.IngestMethod, &title, &doc.Status,
		&metadata, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.Title = title.String
	doc.Metadata = metadata.String
	return doc, nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	doc := &Document{}
	var title, metadata sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, path, filename, format, content_hash, ingest_method, title, status, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Format,
		&doc.ContentHash, &doc.IngestMethod, &title, &doc.Status,
		&metadata, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.Title = title.String
	doc.Metadata = metadata.String
	return doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, filename, format, content_hash, ingest_method, title, status, metadata, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var title, metadata sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Format,
			&doc.ContentHash, &doc.IngestMethod, &title, &doc.Status,
			&metadata, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		doc.Title = title.String
		doc.Metadata = metadata.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SetDocumentStatus updates a document's processing status.
func (s *Store) SetDocumentStatus(ctx context.Context, id int64, status string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}

// DeleteDocument removes a document and its decks.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Deck operations ---

// SaveDeck stores a finished deck plan.
func (s *Store) SaveDeck(ctx context.Context, deck Deck) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decks (id, document_id, title, plan, sections, slide_count, bullet_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, deck.ID, deck.DocumentID, deck.Title, deck.Plan, deck.Sections, deck.SlideCount, deck.BulletCount)
	return err
}

// GetDeck retrieves a deck by ID.
func (s *Store) GetDeck(ctx context.Context, id string) (*Deck, error) {
	deck := &Deck{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, title, plan, sections, slide_count, bullet_count, created_at
		FROM decks WHERE id = ?
	`, id).Scan(&deck.ID, &deck.DocumentID, &deck.Title, &deck.Plan,
		&deck.Sections, &deck.SlideCount, &deck.BulletCount, &deck.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// LatestDeck retrieves the most recent deck for a document.
func (s *Store) LatestDeck(ctx context.Context, documentID int64) (*Deck, error) {
	deck := &Deck{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, title, plan, sections, slide_count, bullet_count, created_at
		FROM decks WHERE document_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, documentID).Scan(&deck.ID, &deck.DocumentID, &deck.Title, &deck.Plan,
		&deck.Sections, &deck.SlideCount, &deck.BulletCount, &deck.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// ListDecks returns all decks for a document, newest first.
func (s *Store) ListDecks(ctx context.Context, documentID int64) ([]Deck, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, title, plan, sections, slide_count, bullet_count, created_at
		FROM decks WHERE document_id = ? ORDER BY created_at DESC
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.DocumentID, &d.Title, &d.Plan,
			&d.Sections, &d.SlideCount, &d.BulletCount, &d.CreatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}
