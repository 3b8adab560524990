package store

import (
	"context"
	"sync"
)

// Memory is an in-process store used by tests and as the degraded fallback
// when the data file cannot be read.
type Memory struct {
	mu  sync.Mutex
	doc Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{doc: NewDocument()}
}

// Get returns a copy of the current document.
func (m *Memory) Get(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone(), nil
}

// Set replaces the current document with a copy of doc.
func (m *Memory) Set(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	return nil
}
