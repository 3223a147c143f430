package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-keychain/internal/utils"
	"github.com/MKhiriev/go-keychain/models"
)

const itemsTable = "keychain_items"

// attributeColumns maps the matchable attributes to their columns.
var attributeColumns = map[string]string{
	models.AttrClass:       "class",
	models.AttrService:     "service",
	models.AttrAccount:     "account",
	models.AttrAccessGroup: "access_group",
	models.AttrAccessible:  "accessible",
}

var selectColumns = []string{"class", "service", "account", "access_group", "accessible", "value_data"}

// SQLBackend is a [Backend] keeping items in the keychain_items table of a
// sqlite or postgres database. The unique (class, service, account,
// access_group) constraint enforces primary key uniqueness.
type SQLBackend struct {
	*DB
	builder sq.StatementBuilderType
	ids     utils.IDGenerator
	now     func() time.Time
}

// NewSQLBackend returns a backend running on db. The schema must already be
// migrated, see [DB.Migrate].
func NewSQLBackend(db *DB) *SQLBackend {
	var placeholder sq.PlaceholderFormat = sq.Question
	if db.dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &SQLBackend{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		ids:     utils.NewUUIDGenerator(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Add implements [Backend].
func (s *SQLBackend) Add(ctx context.Context, attributes models.AttributeMap) error {
	pk := primaryKeyOf(attributes)

	// NULL marks an item stored without value data
	var data any
	if b, ok := attributes.Bytes(models.AttrValueData); ok {
		data = b
	}

	query, args, err := s.builder.
		Insert(itemsTable).
		Columns("id", "class", "service", "account", "access_group", "accessible", "value_data", "created_at").
		Values(s.ids.Generate(), pk.class, pk.service, pk.account, pk.group,
			attributes.String(models.AttrAccessible), data, s.now()).
		ToSql()
	if err != nil {
		return newStoreError(OpAdd, StatusInternal, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		status := s.errorClassificator.Classify(err)
		s.logger.Debug().Err(err).
			Str("func", "SQLBackend.Add").
			Str("status", status.String()).
			Msg("insert failed")
		if status == StatusDuplicateItem {
			return newStoreError(OpAdd, status, err)
		}
		return newStoreError(OpAdd, status, fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

// Delete implements [Backend].
func (s *SQLBackend) Delete(ctx context.Context, query models.AttributeMap) error {
	stmt := s.builder.Delete(itemsTable)
	if where := whereMatching(query); len(where) > 0 {
		stmt = stmt.Where(where)
	}

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return newStoreError(OpDelete, StatusInternal, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	result, err := s.DB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return newStoreError(OpDelete, s.errorClassificator.Classify(err), fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return newStoreError(OpDelete, StatusIO, fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	s.logger.Debug().
		Str("func", "SQLBackend.Delete").
		Int64("rows_affected", affected).
		Msg("items deleted")

	if affected == 0 {
		return newStoreError(OpDelete, StatusItemNotFound, nil)
	}
	return nil
}

// CopyMatching implements [Backend]. The oldest matching item wins.
func (s *SQLBackend) CopyMatching(ctx context.Context, query models.AttributeMap) (any, error) {
	stmt := s.builder.
		Select(selectColumns...).
		From(itemsTable).
		OrderBy("created_at", "id").
		Limit(1)
	if where := whereMatching(query); len(where) > 0 {
		stmt = stmt.Where(where)
	}

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, newStoreError(OpCopyMatching, StatusInternal, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var (
		class, service, account, group, accessible string
		data                                       []byte
	)
	err = s.DB.QueryRowContext(ctx, sqlQuery, args...).
		Scan(&class, &service, &account, &group, &accessible, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newStoreError(OpCopyMatching, StatusItemNotFound, nil)
	}
	if err != nil {
		return nil, newStoreError(OpCopyMatching, s.errorClassificator.Classify(err), fmt.Errorf("%w: %w", ErrScanningRow, err))
	}

	stored := models.AttributeMap{models.AttrClass: class}
	for key, value := range map[string]string{
		models.AttrService:     service,
		models.AttrAccount:     account,
		models.AttrAccessGroup: group,
		models.AttrAccessible:  accessible,
	} {
		if value != "" {
			stored[key] = value
		}
	}
	if data != nil {
		stored[models.AttrValueData] = data
	}

	return shapeResult(stored, query), nil
}

// Close closes the underlying database.
func (s *SQLBackend) Close() error {
	return s.DB.Close()
}

// whereMatching turns the match keys present in query into column
// conditions, in matchKeys order.
func whereMatching(query models.AttributeMap) sq.And {
	var where sq.And
	for _, key := range matchKeys {
		if value, ok := query[key]; ok {
			where = append(where, sq.Eq{attributeColumns[key]: value})
		}
	}
	return where
}
