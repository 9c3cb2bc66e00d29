package repository

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder accumulates AND-ed predicates with positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

func newWhereBuilder(args ...any) *whereBuilder {
	return &whereBuilder{args: args}
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// contains adds a case-insensitive substring match; empty values are skipped.
func (b *whereBuilder) contains(column, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s ILIKE %s", column, b.arg("%"+likeEscaper.Replace(value)+"%")))
}

func (b *whereBuilder) equals(column string, value any) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s = %s", column, b.arg(value)))
}

func (b *whereBuilder) String() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause.
func (b *whereBuilder) page(limit, offset int) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", b.arg(limit), b.arg(offset))
}

// orderBy resolves key against the whitelist, falling back to fallback,
// and always ends with tieBreak so equal keys keep a stable order.
func orderBy(columns map[string]string, fallback string, opts ListOptions, tieBreak string) string {
	col, ok := columns[opts.SortBy]
	if !ok {
		col = columns[fallback]
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s", col, opts.direction(), tieBreak)
}
