package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bgrellier/paperdeck"
	"github.com/bgrellier/paperdeck/store"
)

type handler struct {
	pipeline *paperdeck.Pipeline
}

func newHandler(p *paperdeck.Pipeline) *handler {
	return &handler{pipeline: p}
}

// POST /api/convert
// Accepts a multipart file upload or JSON with a file path, and returns
// the finished deck plan.
func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	// Multipart upload first.
	if err := r.ParseMultipartForm(100 << 20); err == nil { // 100MB max
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()

			// Sanitise filename to prevent path traversal.
			safeName := filepath.Base(header.Filename)
			tmpPath := filepath.Join(os.TempDir(), safeName)
			dst, err := os.Create(tmpPath)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to process file")
				slog.Error("creating temp file", "error", err)
				return
			}
			if _, err := io.Copy(dst, file); err != nil {
				dst.Close()
				writeError(w, http.StatusInternalServerError, "failed to save file")
				slog.Error("saving uploaded file", "error", err)
				return
			}
			dst.Close()
			defer os.Remove(tmpPath)

			h.convert(ctx, w, tmpPath)
			return
		}
	}

	// JSON body with a path on the server's filesystem.
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart file or JSON with 'path'")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	absPath, err := filepath.Abs(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusBadRequest, "path must be an existing file")
		return
	}

	h.convert(ctx, w, absPath)
}

func (h *handler) convert(ctx context.Context, w http.ResponseWriter, path string) {
	deck, err := h.pipeline.Convert(ctx, path)
	switch {
	case errors.Is(err, paperdeck.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, paperdeck.ErrNoContent):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "conversion failed")
		slog.Error("convert error", "path", path, "error", err)
	default:
		writeJSON(w, http.StatusOK, deck)
	}
}

// GET /api/documents
func (h *handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.pipeline.Store().ListDocuments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing documents failed")
		slog.Error("list documents error", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs, "count": len(docs)})
}

// GET /api/documents/{id}/decks
func (h *handler) handleListDecks(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	decks, err := h.pipeline.Store().ListDecks(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing decks failed")
		slog.Error("list decks error", "document_id", id, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": decks, "count": len(decks)})
}

// DELETE /api/documents/{id}
func (h *handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	if err := h.pipeline.Store().DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "deleting document failed")
		slog.Error("delete document error", "document_id", id, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// GET /api/decks/{id}
func (h *handler) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.pipeline.Store().GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "deck not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "fetching deck failed")
		slog.Error("get deck error", "error", err)
		return
	}

	// Expand the stored JSON columns so clients get structured slides.
	resp := map[string]any{
		"id":           deck.ID,
		"document_id":  deck.DocumentID,
		"title":        deck.Title,
		"slide_count":  deck.SlideCount,
		"bullet_count": deck.BulletCount,
		"created_at":   deck.CreatedAt,
	}
	var slides json.RawMessage
	if json.Unmarshal([]byte(deck.Plan), &slides) == nil {
		resp["slides"] = slides
	}
	var sections json.RawMessage
	if deck.Sections != "" && json.Unmarshal([]byte(deck.Sections), &sections) == nil {
		resp["sections"] = sections
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
