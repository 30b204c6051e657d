package postgres

import (
	"fmt"
	"strings"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// columnSet accumulates column/value pairs with positional placeholders.
type columnSet struct {
	cols []string
	args []any
}

func (s *columnSet) add(col string, v any) {
	s.cols = append(s.cols, col)
	s.args = append(s.args, v)
}

func (s *columnSet) empty() bool { return len(s.cols) == 0 }

// addField adds col only when the field was supplied. Null is written as NULL.
func addField[T any](s *columnSet, col string, f optional.Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		s.add(col, nil)
		return
	}
	s.add(col, f.Value)
}

// updateSQL renders "UPDATE table SET ... WHERE key = $n [AND extra] RETURNING returning".
// updated_at never moves backwards.
func (s *columnSet) updateSQL(table, key string, id int64, extraWhere, returning string) (string, []any) {
	sets := make([]string, 0, len(s.cols)+1)
	for i, c := range s.cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	sets = append(sets, "updated_at = GREATEST(now(), updated_at)")
	args := append(append([]any{}, s.args...), id)

	where := fmt.Sprintf("%s = $%d", key, len(args))
	if extraWhere != "" {
		where += " AND " + extraWhere
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING %s", table, strings.Join(sets, ", "), where, returning)
	return q, args
}

func (s *columnSet) insertSQL(table, returning string) (string, []any) {
	if s.empty() {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", table, returning), nil
	}
	ph := make([]string, len(s.cols))
	for i := range s.cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(s.cols, ", "), strings.Join(ph, ", "), returning)
	return q, s.args
}
