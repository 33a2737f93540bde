package postgres

import (
	"context"
	"fmt"
)

// CountByStatus returns row counts grouped by the status column of table.
// table must be a trusted identifier.
func CountByStatus(ctx context.Context, q Querier, table string) (map[string]int, error) {
	query, args, err := Psql.Select("status", "count(*)").
		From(table).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count %s query: %w", table, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", table, err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count %s: %w", table, err)
	}
	return counts, nil
}
