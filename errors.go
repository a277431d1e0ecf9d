package paperdeck

import "errors"

var (
	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("paperdeck: unsupported document format")

	// ErrIngestFailed is returned when document ingestion fails.
	ErrIngestFailed = errors.New("paperdeck: ingestion failed")

	// ErrNoContent is returned when a document yields no sections and no
	// slides at all. Callers decide whether this is fatal; the pipeline
	// itself treats empty input as a valid degenerate case.
	ErrNoContent = errors.New("paperdeck: no content produced")

	// ErrDocumentNotFound is returned when a document ID does not exist.
	ErrDocumentNotFound = errors.New("paperdeck: document not found")

	// ErrDeckNotFound is returned when a deck ID does not exist.
	ErrDeckNotFound = errors.New("paperdeck: deck not found")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("paperdeck: invalid configuration")
)
