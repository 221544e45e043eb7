// Package memory provides a process-local DocumentStore. It backs the service
// when DOC_STORE=memory and the unit tests of everything above the store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/jsondoc"
)

type collection struct {
	ids  []string
	docs map[string]ports.Document
}

// DocumentStore keeps normalized document copies behind a single mutex.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]*collection
	unique      map[string][]string
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

func NewDocumentStore(indexes ...ports.UniqueIndex) *DocumentStore {
	unique := make(map[string][]string)
	for _, idx := range indexes {
		unique[idx.Collection] = append(unique[idx.Collection], idx.Field)
	}
	return &DocumentStore{
		collections: make(map[string]*collection),
		unique:      unique,
	}
}

func (s *DocumentStore) FindOne(ctx context.Context, name string, filter ports.Filter) (ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	for _, id := range c.ids {
		if matches(c.docs[id], f) {
			return jsondoc.Normalize(c.docs[id])
		}
	}
	return nil, ports.ErrDocumentNotFound
}

func (s *DocumentStore) FindMany(ctx context.Context, name string, filter ports.Filter) ([]ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	out := make([]ports.Document, 0)
	for _, id := range c.ids {
		if !matches(c.docs[id], f) {
			continue
		}
		doc, cpErr := jsondoc.Normalize(c.docs[id])
		if cpErr != nil {
			return nil, cpErr
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *DocumentStore) InsertOne(ctx context.Context, name string, doc ports.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d, err := jsondoc.Normalize(doc)
	if err != nil {
		return "", err
	}

	id, err := ports.EnsureDocumentID(d)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	if _, exists := c.docs[id]; exists {
		return "", fmt.Errorf("%s/%s: %w", name, id, ports.ErrDuplicateKey)
	}
	if field, taken := s.violatesUnique(name, c, d, ""); taken {
		return "", fmt.Errorf("%s.%s: %w", name, field, ports.ErrDuplicateKey)
	}

	c.ids = append(c.ids, id)
	c.docs[id] = d
	return id, nil
}

func (s *DocumentStore) UpdateOne(
	ctx context.Context,
	name string,
	filter ports.Filter,
	patch ports.Patch,
) (ports.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.UpdateResult{}, err
	}
	if _, ok := patch[ports.IDField]; ok {
		return ports.UpdateResult{}, fmt.Errorf("update %s: %s cannot be patched", name, ports.IDField)
	}
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return ports.UpdateResult{}, err
	}
	p, err := jsondoc.Normalize(patch)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	for _, id := range c.ids {
		current := c.docs[id]
		if !matches(current, f) {
			continue
		}

		next := make(ports.Document, len(current)+len(p))
		modified := false
		for k, v := range current {
			next[k] = v
		}
		for k, v := range p {
			if old, ok := current[k]; !ok || !jsondoc.Equal(old, v) {
				modified = true
			}
			next[k] = v
		}
		if !modified {
			return ports.UpdateResult{Matched: 1}, nil
		}
		if field, taken := s.violatesUnique(name, c, next, id); taken {
			return ports.UpdateResult{}, fmt.Errorf("%s.%s: %w", name, field, ports.ErrDuplicateKey)
		}

		c.docs[id] = next
		return ports.UpdateResult{Matched: 1, Modified: 1}, nil
	}
	return ports.UpdateResult{}, nil
}

func (s *DocumentStore) DeleteOne(ctx context.Context, name string, filter ports.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	for i, id := range c.ids {
		if !matches(c.docs[id], f) {
			continue
		}
		delete(c.docs, id)
		c.ids = append(c.ids[:i], c.ids[i+1:]...)
		return 1, nil
	}
	return 0, nil
}

func (s *DocumentStore) FindOneAndIncrement(
	ctx context.Context,
	name, key, field string,
	delta int64,
) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if field == ports.IDField {
		return 0, fmt.Errorf("increment %s: %s is not a counter field", name, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	doc, ok := c.docs[key]
	if !ok {
		doc = ports.Document{ports.IDField: key}
		c.ids = append(c.ids, key)
		c.docs[key] = doc
	}

	current, err := jsondoc.Int64(doc[field])
	if err != nil {
		return 0, fmt.Errorf("increment %s/%s.%s: %w", name, key, field, err)
	}
	next := current + delta
	doc[field] = float64(next)
	return next, nil
}

func (s *DocumentStore) collection(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]ports.Document)}
		s.collections[name] = c
	}
	return c
}

func (s *DocumentStore) violatesUnique(name string, c *collection, doc ports.Document, selfID string) (string, bool) {
	for _, field := range s.unique[name] {
		value, ok := doc[field]
		if !ok || value == nil {
			continue
		}
		for id, other := range c.docs {
			if id != selfID && jsondoc.Equal(other[field], value) {
				return field, true
			}
		}
	}
	return "", false
}

func matches(doc ports.Document, filter ports.Document) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !jsondoc.Equal(got, want) {
			return false
		}
	}
	return true
}
