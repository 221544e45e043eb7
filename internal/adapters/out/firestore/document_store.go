package firestore

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/jsondoc"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DocumentStore implements ports.DocumentStore. Multi-step operations run in
// Firestore transactions: increments and compare-and-set updates are retried
// by the SDK on contention and never observe a partial write.
//
// Unique indexes are enforced on insert only.
type DocumentStore struct {
	client *firestore.Client
	unique map[string][]string
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

func NewDocumentStore(client *firestore.Client, indexes ...ports.UniqueIndex) *DocumentStore {
	unique := make(map[string][]string)
	for _, idx := range indexes {
		unique[idx.Collection] = append(unique[idx.Collection], idx.Field)
	}
	return &DocumentStore{client: client, unique: unique}
}

func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter ports.Filter) (ports.Document, error) {
	docs, err := s.find(ctx, nil, collection, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ports.ErrDocumentNotFound
	}
	return toDocument(docs[0])
}

func (s *DocumentStore) FindMany(ctx context.Context, collection string, filter ports.Filter) ([]ports.Document, error) {
	snaps, err := s.find(ctx, nil, collection, filter, 0)
	if err != nil {
		return nil, err
	}

	out := make([]ports.Document, 0, len(snaps))
	for _, snap := range snaps {
		doc, docErr := toDocument(snap)
		if docErr != nil {
			return nil, docErr
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *DocumentStore) InsertOne(ctx context.Context, collection string, doc ports.Document) (string, error) {
	data, err := jsondoc.Normalize(doc)
	if err != nil {
		return "", err
	}
	id, err := ports.EnsureDocumentID(data)
	if err != nil {
		return "", err
	}
	delete(data, ports.IDField)

	ref := s.client.Collection(collection).Doc(id)
	fields := s.unique[collection]
	if len(fields) == 0 {
		if _, err = ref.Create(ctx, data); err != nil {
			return "", translate(fmt.Sprintf("insert %s/%s", collection, id), err)
		}
		return id, nil
	}

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, field := range fields {
			value, ok := data[field]
			if !ok || value == nil {
				continue
			}
			taken, txErr := s.find(ctx, tx, collection, ports.Filter{field: value}, 1)
			if txErr != nil {
				return txErr
			}
			if len(taken) > 0 {
				return fmt.Errorf("%s.%s: %w", collection, field, ports.ErrDuplicateKey)
			}
		}
		return tx.Create(ref, data)
	})
	if err != nil {
		return "", translate(fmt.Sprintf("insert %s/%s", collection, id), err)
	}
	return id, nil
}

func (s *DocumentStore) UpdateOne(
	ctx context.Context,
	collection string,
	filter ports.Filter,
	patch ports.Patch,
) (ports.UpdateResult, error) {
	if _, ok := patch[ports.IDField]; ok {
		return ports.UpdateResult{}, fmt.Errorf("update %s: %s cannot be patched", collection, ports.IDField)
	}
	p, err := jsondoc.Normalize(patch)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	var result ports.UpdateResult
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result = ports.UpdateResult{}

		snaps, txErr := s.find(ctx, tx, collection, filter, 1)
		if txErr != nil || len(snaps) == 0 {
			return txErr
		}
		result.Matched = 1

		current, txErr := jsondoc.Normalize(snaps[0].Data())
		if txErr != nil {
			return txErr
		}

		var updates []firestore.Update
		for k, v := range p {
			if old, ok := current[k]; ok && jsondoc.Equal(old, v) {
				continue
			}
			updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
		}
		if len(updates) == 0 {
			return nil
		}

		result.Modified = 1
		return tx.Update(snaps[0].Ref, updates)
	})
	if err != nil {
		return ports.UpdateResult{}, translate("update "+collection, err)
	}
	return result, nil
}

func (s *DocumentStore) DeleteOne(ctx context.Context, collection string, filter ports.Filter) (int64, error) {
	var deleted int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = 0

		snaps, txErr := s.find(ctx, tx, collection, filter, 1)
		if txErr != nil || len(snaps) == 0 {
			return txErr
		}
		deleted = 1
		return tx.Delete(snaps[0].Ref)
	})
	if err != nil {
		return 0, translate("delete "+collection, err)
	}
	return deleted, nil
}

func (s *DocumentStore) FindOneAndIncrement(
	ctx context.Context,
	collection, key, field string,
	delta int64,
) (int64, error) {
	if field == ports.IDField {
		return 0, fmt.Errorf("increment %s: %s is not a counter field", collection, field)
	}

	ref := s.client.Collection(collection).Doc(key)
	var next int64
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		var current int64

		snap, txErr := tx.Get(ref)
		switch {
		case status.Code(txErr) == codes.NotFound:
		case txErr != nil:
			return txErr
		default:
			raw, dataErr := snap.DataAt(field)
			if dataErr == nil {
				if current, txErr = jsondoc.Int64(raw); txErr != nil {
					return txErr
				}
			}
		}

		next = current + delta
		return tx.Set(ref, map[string]any{field: float64(next)}, firestore.MergeAll)
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s/%s.%s: %w", collection, key, field, err)
	}
	return next, nil
}

// find returns up to limit snapshots matching filter (limit 0 means all).
// Equality on scalar fields is pushed into the query; every field is then
// re-checked on the normalized document so nested values compare exactly.
func (s *DocumentStore) find(
	ctx context.Context,
	tx *firestore.Transaction,
	collection string,
	filter ports.Filter,
	limit int,
) ([]*firestore.DocumentSnapshot, error) {
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return nil, err
	}
	col := s.client.Collection(collection)

	if rawID, ok := f[ports.IDField]; ok {
		id, isString := rawID.(string)
		if !isString || id == "" {
			return nil, nil
		}
		var snap *firestore.DocumentSnapshot
		if tx != nil {
			snap, err = tx.Get(col.Doc(id))
		} else {
			snap, err = col.Doc(id).Get(ctx)
		}
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !matches(snap, f) {
			return nil, nil
		}
		return []*firestore.DocumentSnapshot{snap}, nil
	}

	q := col.Query
	for k, v := range f {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		q = q.WherePath(firestore.FieldPath{k}, "==", v)
	}

	var it *firestore.DocumentIterator
	if tx != nil {
		it = tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}
	defer it.Stop()

	var out []*firestore.DocumentSnapshot
	for {
		snap, itErr := it.Next()
		if errors.Is(itErr, iterator.Done) {
			break
		}
		if itErr != nil {
			return nil, itErr
		}
		if !matches(snap, f) {
			continue
		}
		out = append(out, snap)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func matches(snap *firestore.DocumentSnapshot, filter ports.Document) bool {
	doc, err := toDocument(snap)
	if err != nil {
		return false
	}
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !jsondoc.Equal(got, want) {
			return false
		}
	}
	return true
}

func toDocument(snap *firestore.DocumentSnapshot) (ports.Document, error) {
	doc, err := jsondoc.Normalize(snap.Data())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", snap.Ref.Path, err)
	}
	doc[ports.IDField] = snap.Ref.ID
	return doc, nil
}

func translate(op string, err error) error {
	if errors.Is(err, ports.ErrDuplicateKey) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%s: %w", op, ports.ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w", op, err)
}
