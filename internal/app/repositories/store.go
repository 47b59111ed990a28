package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/db"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/casing"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
	"github.com/yigit/docsystem/internal/pkg/logger"
)

var psql = query.Builder()

// selectRecords runs b and returns every row as a camelCase record
func selectRecords(ctx context.Context, q db.Querier, b squirrel.Sqlizer, op string) ([]models.Record, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, apperrors.NewStorageError(op, err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, apperrors.NewStorageError(op, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error scanning rows")
		return nil, apperrors.NewStorageError(op, err)
	}

	records := make([]models.Record, len(maps))
	for i, m := range maps {
		records[i] = casing.CamelizeKeys(m)
	}
	return records, nil
}

// selectRecord runs b and returns its single row. notFound is returned
// unchanged when there is no row; a nil notFound makes a missing row a
// storage failure.
func selectRecord(ctx context.Context, q db.Querier, b squirrel.Sqlizer, op string, notFound error) (models.Record, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, apperrors.NewStorageError(op, err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, apperrors.NewStorageError(op, err)
	}

	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if dberrors.IsNoRows(err) && notFound != nil {
		return nil, notFound
	}
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error scanning row")
		return nil, apperrors.NewStorageError(op, err)
	}
	return casing.CamelizeKeys(m), nil
}

// countRows runs a COUNT(*) statement
func countRows(ctx context.Context, q db.Querier, b squirrel.Sqlizer, op string) (int64, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building count SQL")
		return 0, apperrors.NewStorageError(op, err)
	}

	var total int64
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing count query")
		return 0, apperrors.NewStorageError(op, err)
	}
	return total, nil
}

// execStatement runs b and reports the number of affected rows
func execStatement(ctx context.Context, q db.Querier, b squirrel.Sqlizer, op string) (int64, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return 0, apperrors.NewStorageError(op, err)
	}

	tag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing statement")
		return 0, apperrors.NewStorageError(op, err)
	}
	return tag.RowsAffected(), nil
}

// writeColumns maps record field names onto column names
func writeColumns(fields models.Record) map[string]interface{} {
	return casing.SnakeKeys(fields)
}

// runListing executes the count and item statements of a listing
func runListing[T any](ctx context.Context, q db.Querier, l query.Listing, p query.Page, op string, decode func(models.Record) T) (query.Result[T], error) {
	total, err := countRows(ctx, q, l.Count, op)
	if err != nil {
		return query.Result[T]{}, err
	}
	if total == 0 {
		return query.NewResult[T](nil, 0, p), nil
	}

	records, err := selectRecords(ctx, q, l.Items, op)
	if err != nil {
		return query.Result[T]{}, err
	}
	return query.NewResult(decodeAll(records, decode), total, p), nil
}

func decodeAll[T any](records []models.Record, decode func(models.Record) T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = decode(r)
	}
	return out
}
