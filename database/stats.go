package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// CatalogCounts holds the collection tallies shown on the catalog home page.
type CatalogCounts struct {
	Books           int64
	Copies          int64
	CopiesAvailable int64
	Authors         int64
	Genres          int64
}

// CountRows returns the number of rows in the given table
func CountRows(db *sql.DB, table string) (int64, error) {
	queryBuilder := psql.Select("COUNT(*)").From(table)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for CountRows(%s): %w", table, err)
	}

	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// CountCopiesByStatus returns the number of copies currently in the given
// loan status
func CountCopiesByStatus(db *sql.DB, status string) (int64, error) {
	queryBuilder := psql.Select("COUNT(*)").
		From("copies").
		Where(sq.Eq{"status": status})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for CountCopiesByStatus: %w", err)
	}

	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count copies with status %s: %w", status, err)
	}
	return count, nil
}
