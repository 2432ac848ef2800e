// Package docstore persists named JSON documents with atomic-replace
// semantics: a reader sees either the previous or the new content of a
// document, never a partial mixture.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrMalformed = errors.New("document malformed")
)

type Store interface {
	// Load decodes the named document into the given value.
	Load(ctx context.Context, name string, into any) error

	// Save serializes doc and atomically replaces the named document.
	Save(ctx context.Context, name string, doc any) error

	Ping(ctx context.Context) error
}
