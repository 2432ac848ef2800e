// Package contact appends feedback and customer-registration records to
// their own documents. Entries are write-only from the service's point of
// view: nothing here ever reads them back.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"StellarStore/internal/docstore"
)

type Feedback struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Comments   string    `json:"comments"`
	ReceivedAt time.Time `json:"received_at"`
}

type Customer struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first-name"`
	LastName   string    `json:"last-name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ReceivedAt time.Time `json:"received_at"`
}

// AppendLog appends entries to one document under a single envelope key,
// e.g. {"feedback": [ ... ]}. The lock is held across the whole
// load-append-save sequence; a missing document starts a fresh envelope.
type AppendLog struct {
	mu    sync.Mutex
	store docstore.Store
	name  string
	key   string
}

func NewAppendLog(store docstore.Store, name, key string) *AppendLog {
	return &AppendLog{store: store, name: name, key: key}
}

func (l *AppendLog) Append(ctx context.Context, entry any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var doc map[string][]json.RawMessage
	err := l.store.Load(ctx, l.name, &doc)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		doc = map[string][]json.RawMessage{}
	case err != nil:
		return err
	}
	if doc == nil {
		doc = map[string][]json.RawMessage{}
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	doc[l.key] = append(doc[l.key], raw)
	return l.store.Save(ctx, l.name, doc)
}
