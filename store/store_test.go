//go:build cgo

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDocument() Document {
	return Document{
		Path:         "/papers/attention.pdf",
		Filename:     "attention.pdf",
		Format:       "pdf",
		ContentHash:  "abc123",
		IngestMethod: "fitz",
		Title:        "Attention Is All You Need",
		Status:       StatusConverted,
	}
}

// ---------------------------------------------------------------------------
// Schema / construction
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	s := newTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil *sql.DB")
	}
}

func TestNewCreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "dir", "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("creating store in nested dir: %v", err)
	}
	s.Close()
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	// New already migrated; a second run must be a no-op.
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func TestUpsertAndGetDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, testDocument())
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.ContentHash != "abc123" {
		t.Errorf("ContentHash = %q, want abc123", doc.ContentHash)
	}
	if doc.Status != StatusConverted {
		t.Errorf("Status = %q, want %q", doc.Status, StatusConverted)
	}
}

func TestUpsertDocumentUpdatesByPath(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.UpsertDocument(ctx, testDocument())
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	changed := testDocument()
	changed.ContentHash = "def456"
	id2, err := s.UpsertDocument(ctx, changed)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Errorf("ids differ after upsert on same path: %d vs %d", id1, id2)
	}

	doc, err := s.GetDocumentByPath(ctx, changed.Path)
	if err != nil {
		t.Fatalf("GetDocumentByPath: %v", err)
	}
	if doc.ContentHash != "def456" {
		t.Errorf("ContentHash = %q, want updated hash", doc.ContentHash)
	}
}

func TestUpsertDocumentInterleavedPaths(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testDocument()
	idA, err := s.UpsertDocument(ctx, first)
	if err != nil {
		t.Fatalf("upsert first: %v", err)
	}

	second := testDocument()
	second.Path = "/papers/resnet.pdf"
	second.Filename = "resnet.pdf"
	idB, err := s.UpsertDocument(ctx, second)
	if err != nil {
		t.Fatalf("upsert second: %v", err)
	}
	if idA == idB {
		t.Fatalf("distinct paths share id %d", idA)
	}

	// Re-upserting the first path must return its own id, not the id of
	// the most recently inserted row on the connection.
	first.ContentHash = "def456"
	again, err := s.UpsertDocument(ctx, first)
	if err != nil {
		t.Fatalf("re-upsert first: %v", err)
	}
	if again != idA {
		t.Errorf("re-upsert of %s returned id %d, want %d", first.Path, again, idA)
	}
}

func TestGetDocumentByPathNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetDocumentByPath(context.Background(), "/nope.pdf")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetDocumentStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.UpsertDocument(ctx, testDocument())
	if err := s.SetDocumentStatus(ctx, id, StatusFailed); err != nil {
		t.Fatalf("SetDocumentStatus: %v", err)
	}
	doc, _ := s.GetDocument(ctx, id)
	if doc.Status != StatusFailed {
		t.Errorf("Status = %q, want %q", doc.Status, StatusFailed)
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.UpsertDocument(ctx, testDocument())
	deck := Deck{ID: "deck-1", DocumentID: id, Title: "T", Plan: "[]", Sections: "[]", SlideCount: 1}
	if err := s.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	if err := s.DeleteDocument(ctx, id); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.GetDeck(ctx, "deck-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deck survived document deletion: %v", err)
	}
}

func TestDeleteDocumentNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteDocument(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Decks
// ---------------------------------------------------------------------------

func TestSaveAndGetDeck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, _ := s.UpsertDocument(ctx, testDocument())
	deck := Deck{
		ID:          "deck-abc",
		DocumentID:  docID,
		Title:       "Attention Is All You Need",
		Plan:        `[{"title":"Method"}]`,
		Sections:    `[{"name":"method"}]`,
		SlideCount:  5,
		BulletCount: 24,
	}
	if err := s.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	got, err := s.GetDeck(ctx, "deck-abc")
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if got.SlideCount != 5 || got.BulletCount != 24 {
		t.Errorf("counts = %d/%d, want 5/24", got.SlideCount, got.BulletCount)
	}
	if got.Plan != deck.Plan {
		t.Errorf("Plan = %q", got.Plan)
	}
}

func TestLatestDeck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, _ := s.UpsertDocument(ctx, testDocument())
	for _, id := range []string{"old", "new"} {
		if err := s.SaveDeck(ctx, Deck{ID: id, DocumentID: docID, Title: "T", Plan: "[]"}); err != nil {
			t.Fatalf("SaveDeck(%s): %v", id, err)
		}
	}

	// Same-second timestamps: either row is acceptable, but one must
	// come back.
	got, err := s.LatestDeck(ctx, docID)
	if err != nil {
		t.Fatalf("LatestDeck: %v", err)
	}
	if got.ID != "old" && got.ID != "new" {
		t.Errorf("LatestDeck ID = %q", got.ID)
	}

	decks, err := s.ListDecks(ctx, docID)
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(decks) != 2 {
		t.Errorf("len(decks) = %d, want 2", len(decks))
	}
}

func TestGetDeckNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetDeck(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListDocuments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"/a.pdf", "/b.pdf", "/c.txt"} {
		doc := testDocument()
		doc.Path = p
		if _, err := s.UpsertDocument(ctx, doc); err != nil {
			t.Fatalf("UpsertDocument(%s): %v", p, err)
		}
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("len(docs) = %d, want 3", len(docs))
	}
}
