package sqlite

import (
	sq "github.com/Masterminds/squirrel"
)

// builder produces SQLite-flavored statements with ? placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// upsertSuffix builds the ON CONFLICT clause that replaces every non-key
// column of an existing row.
func upsertSuffix(key string, columns []string) string {
	s := "ON CONFLICT(" + key + ") DO UPDATE SET "
	first := true
	for _, c := range columns {
		if c == key {
			continue
		}
		if !first {
			s += ", "
		}
		s += c + " = excluded." + c
		first = false
	}
	return s
}
