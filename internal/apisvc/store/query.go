package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the stores use.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Select builds a parameterised SELECT in the shape the backend query
// builder offers: equality/range filters, IN lists, OR groups and ordering.
type Select struct {
	from    string
	columns []string
	joins   []string
	where   []string
	args    []any
	order   []string
	limit   int
}

func From(table string) *Select {
	return &Select{from: table}
}

func (s *Select) Columns(cols ...string) *Select {
	s.columns = append(s.columns, cols...)
	return s
}

func (s *Select) LeftJoin(table, on string) *Select {
	s.joins = append(s.joins, "LEFT JOIN "+table+" ON "+on)
	return s
}

func (s *Select) next(arg any) string {
	s.args = append(s.args, arg)
	return fmt.Sprintf("$%d", len(s.args))
}

func (s *Select) Eq(col string, val any) *Select {
	s.where = append(s.where, col+" = "+s.next(val))
	return s
}

// EqOpt adds an equality filter only when val is not blank, the way the
// screens skip unset filter inputs.
func (s *Select) EqOpt(col, val string) *Select {
	if strings.TrimSpace(val) == "" {
		return s
	}
	return s.Eq(col, val)
}

func (s *Select) Gte(col string, val any) *Select {
	s.where = append(s.where, col+" >= "+s.next(val))
	return s
}

func (s *Select) Lte(col string, val any) *Select {
	s.where = append(s.where, col+" <= "+s.next(val))
	return s
}

func (s *Select) In(col string, vals []string) *Select {
	s.where = append(s.where, col+" = ANY("+s.next(vals)+")")
	return s
}

// AnyEq matches when at least one of cols equals val.
func (s *Select) AnyEq(cols []string, val any) *Select {
	p := s.next(val)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " = " + p
	}
	s.where = append(s.where, "("+strings.Join(parts, " OR ")+")")
	return s
}

func (s *Select) Where(cond string, args ...any) *Select {
	for _, a := range args {
		cond = strings.Replace(cond, "?", s.next(a), 1)
	}
	s.where = append(s.where, cond)
	return s
}

func (s *Select) OrderBy(col string, asc bool) *Select {
	if asc {
		s.order = append(s.order, col+" ASC")
	} else {
		s.order = append(s.order, col+" DESC")
	}
	return s
}

func (s *Select) Limit(n int) *Select {
	s.limit = n
	return s
}

// SQL renders the statement and its positional arguments.
func (s *Select) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(s.from)
	for _, j := range s.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(s.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.where, " AND "))
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.order, ", "))
	}
	if s.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", s.limit)
	}
	return b.String(), s.args
}

// insertSQL renders INSERT INTO table (cols...) VALUES ($1...).
func insertSQL(table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(ph, ", "))
}

// updateSQL renders UPDATE table SET col=$2... WHERE id = $1.
func updateSQL(table string, cols []string) string {
	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = fmt.Sprintf("%s = $%d", c, i+2)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", table, strings.Join(set, ", "))
}
