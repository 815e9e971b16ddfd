package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/launchpad/bookstore/internal/domain"
)

// Cached payloads carry an explicit schema version so a shape change
// surfaces as a typed decode error instead of a silent zero value.
const snapshotVersion = 1

var ErrSnapshotSchema = errors.New("cache snapshot schema mismatch")

type bookSnapshot struct {
	Version int         `json:"v"`
	Book    domain.Book `json:"book"`
}

type bookListSnapshot struct {
	Version int           `json:"v"`
	Books   []domain.Book `json:"books"`
}

func encodeBook(b domain.Book) (string, error) {
	raw, err := json.Marshal(bookSnapshot{Version: snapshotVersion, Book: b})
	if err != nil {
		return "", fmt.Errorf("marshal book snapshot: %w", err)
	}
	return string(raw), nil
}

func decodeBook(raw string) (domain.Book, error) {
	var snap bookSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.Book{}, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}
	if snap.Version != snapshotVersion {
		return domain.Book{}, fmt.Errorf("%w: got version %d, want %d", ErrSnapshotSchema, snap.Version, snapshotVersion)
	}
	return snap.Book, nil
}

func encodeBookList(books []domain.Book) (string, error) {
	raw, err := json.Marshal(bookListSnapshot{Version: snapshotVersion, Books: books})
	if err != nil {
		return "", fmt.Errorf("marshal book list snapshot: %w", err)
	}
	return string(raw), nil
}

func decodeBookList(raw string) ([]domain.Book, error) {
	var snap bookListSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: got version %d, want %d", ErrSnapshotSchema, snap.Version, snapshotVersion)
	}
	return snap.Books, nil
}
