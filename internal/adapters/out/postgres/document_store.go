package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/jsondoc"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

//nolint:gochecknoglobals // compiled once
var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]{0,23}$`)

// DocumentStore implements ports.DocumentStore on a GORM connection.
type DocumentStore struct {
	db *gorm.DB
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore migrates the documents table and the requested unique
// indexes, then returns the store. Migration is idempotent.
func NewDocumentStore(ctx context.Context, db *gorm.DB, indexes ...ports.UniqueIndex) (*DocumentStore, error) {
	if err := Migrate(ctx, db, indexes...); err != nil {
		return nil, err
	}
	return &DocumentStore{db: db}, nil
}

// Migrate creates the documents table and unique indexes.
func Migrate(ctx context.Context, db *gorm.DB, indexes ...ports.UniqueIndex) error {
	if err := db.WithContext(ctx).AutoMigrate(&DocumentDTO{}); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	if err := db.WithContext(ctx).Exec(
		`CREATE INDEX IF NOT EXISTS idx_documents_collection_created_at ON documents (collection, created_at)`,
	).Error; err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}

	for _, idx := range indexes {
		if !identifier.MatchString(idx.Collection) || !identifier.MatchString(idx.Field) {
			return fmt.Errorf("unique index %s.%s: names must match %s", idx.Collection, idx.Field, identifier)
		}
		stmt := fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_documents_%[1]s_%[2]s ON documents ((body ->> '%[2]s')) WHERE collection = '%[1]s'`,
			idx.Collection, idx.Field,
		)
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("unique index %s.%s: %w", idx.Collection, idx.Field, err)
		}
	}
	return nil
}

func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter ports.Filter) (ports.Document, error) {
	where, args, err := whereClause(collection, filter)
	if err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	if err = s.db.WithContext(ctx).
		Where(where, args...).
		Order("created_at, id").
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	if len(dtos) == 0 {
		return nil, ports.ErrDocumentNotFound
	}
	return toDocument(dtos[0])
}

func (s *DocumentStore) FindMany(ctx context.Context, collection string, filter ports.Filter) ([]ports.Document, error) {
	where, args, err := whereClause(collection, filter)
	if err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	if err = s.db.WithContext(ctx).
		Where(where, args...).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(dtos))
	for _, dto := range dtos {
		doc, docErr := toDocument(dto)
		if docErr != nil {
			return nil, docErr
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *DocumentStore) InsertOne(ctx context.Context, collection string, doc ports.Document) (string, error) {
	d, err := jsondoc.Normalize(doc)
	if err != nil {
		return "", err
	}
	id, err := ports.EnsureDocumentID(d)
	if err != nil {
		return "", err
	}
	delete(d, ports.IDField)

	body, err := jsondoc.Marshal(d)
	if err != nil {
		return "", err
	}

	dto := DocumentDTO{
		Collection: collection,
		ID:         id,
		Body:       string(body),
		CreatedAt:  time.Now().UTC(),
	}
	if err = s.db.WithContext(ctx).Create(&dto).Error; err != nil {
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
	where, args, err := whereClause(collection, filter)
	if err != nil {
		return ports.UpdateResult{}, err
	}
	p, err := jsondoc.Normalize(patch)
	if err != nil {
		return ports.UpdateResult{}, err
	}
	rawPatch, err := jsondoc.Marshal(p)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	var result ports.UpdateResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE re-checks the filter after waiting on a concurrent
		// writer, so a filter on the old value behaves as compare-and-set.
		var dtos []DocumentDTO
		if txErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(where, args...).
			Order("created_at, id").
			Limit(1).
			Find(&dtos).Error; txErr != nil {
			return txErr
		}
		if len(dtos) == 0 {
			return nil
		}
		result.Matched = 1

		current, txErr := jsondoc.Unmarshal([]byte(dtos[0].Body))
		if txErr != nil {
			return txErr
		}
		if !changes(current, p) {
			return nil
		}

		if txErr = tx.Exec(
			`UPDATE documents SET body = body || ?::jsonb WHERE collection = ? AND id = ?`,
			string(rawPatch), collection, dtos[0].ID,
		).Error; txErr != nil {
			return txErr
		}
		result.Modified = 1
		return nil
	})
	if err != nil {
		return ports.UpdateResult{}, translate("update "+collection, err)
	}
	return result, nil
}

func (s *DocumentStore) DeleteOne(ctx context.Context, collection string, filter ports.Filter) (int64, error) {
	where, args, err := whereClause(collection, filter)
	if err != nil {
		return 0, err
	}

	stmt := `DELETE FROM documents WHERE (collection, id) IN (
		SELECT collection, id FROM documents WHERE ` + where + ` ORDER BY created_at, id LIMIT 1
	)`
	res := s.db.WithContext(ctx).Exec(stmt, args...)
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", collection, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *DocumentStore) FindOneAndIncrement(
	ctx context.Context,
	collection, key, field string,
	delta int64,
) (int64, error) {
	if field == ports.IDField {
		return 0, fmt.Errorf("increment %s: %s is not a counter field", collection, field)
	}

	var value int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO documents (collection, id, body, created_at)
		VALUES (?, ?, jsonb_build_object(?::text, ?::bigint), now())
		ON CONFLICT (collection, id) DO UPDATE
		SET body = documents.body || jsonb_build_object(
			?::text, COALESCE((documents.body ->> ?::text)::bigint, 0) + ?::bigint
		)
		RETURNING (body ->> ?::text)::bigint`,
		collection, key, field, delta,
		field, field, delta,
		field,
	).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("increment %s/%s.%s: %w", collection, key, field, err)
	}
	return value, nil
}

// whereClause renders a collection-scoped equality filter. Values are
// compared as jsonb, so 150 and 150.0 are equal and strings never equal
// numbers.
func whereClause(collection string, filter ports.Filter) (string, []any, error) {
	f, err := jsondoc.Normalize(filter)
	if err != nil {
		return "", nil, err
	}

	conds := []string{"collection = ?"}
	args := []any{collection}
	for k, v := range f {
		if k == ports.IDField {
			id, ok := v.(string)
			if !ok {
				conds = append(conds, "FALSE")
				continue
			}
			conds = append(conds, "id = ?")
			args = append(args, id)
			continue
		}

		raw, mErr := json.Marshal(v)
		if mErr != nil {
			return "", nil, mErr
		}
		conds = append(conds, "body -> ?::text = ?::jsonb")
		args = append(args, k, string(raw))
	}
	return strings.Join(conds, " AND "), args, nil
}

func toDocument(dto DocumentDTO) (ports.Document, error) {
	doc, err := jsondoc.Unmarshal([]byte(dto.Body))
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", dto.Collection, dto.ID, err)
	}
	doc[ports.IDField] = dto.ID
	return doc, nil
}

func changes(current, patch ports.Document) bool {
	for k, v := range patch {
		if old, ok := current[k]; !ok || !jsondoc.Equal(old, v) {
			return true
		}
	}
	return false
}

func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w: %s", op, ports.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
