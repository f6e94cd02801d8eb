package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLGateway serves the hosted-backend contract from a SQL database.
// Rows inserted without an id get a fresh UUID; created_at comes from the
// column default.
type SQLGateway struct{ db *sqlx.DB }

func NewSQLGateway(db *sqlx.DB) *SQLGateway { return &SQLGateway{db: db} }

func (g *SQLGateway) Select(ctx context.Context, table string, dest any, q Query) error {
	if err := checkQuery(table, q); err != nil {
		return wrap("select", table, err)
	}
	cols, _ := tableColumns(table)

	var sb strings.Builder
	sb.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM " + table)
	args := make([]any, 0, len(q.Filters))
	if len(q.Filters) > 0 {
		sb.WriteString(" WHERE ")
		for i, f := range q.Filters {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(f.Column + " = ?")
			args = append(args, f.Value)
		}
	}
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts = append(parts, o.Column+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	return wrap("select", table, g.db.SelectContext(ctx, dest, g.db.Rebind(sb.String()), args...))
}

func (g *SQLGateway) Insert(ctx context.Context, table string, row map[string]any) error {
	keys, err := rowKeys(table, row)
	if err != nil {
		return wrap("insert", table, err)
	}
	vals := make(map[string]any, len(row)+1)
	for k, v := range row {
		vals[k] = v
	}
	if id, _ := vals["id"].(string); id == "" {
		vals["id"] = uuid.NewString()
		if _, had := row["id"]; !had {
			keys = append([]string{"id"}, keys...)
		}
	}

	named := make([]string, len(keys))
	for i, k := range keys {
		named[i] = ":" + k
	}
	q := "INSERT INTO " + table + " (" + strings.Join(keys, ", ") + ") VALUES (" + strings.Join(named, ", ") + ")"
	_, err = g.db.NamedExecContext(ctx, q, vals)
	return wrap("insert", table, err)
}

func (g *SQLGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	if _, err := tableColumns(table); err != nil {
		return wrap("delete", table, err)
	}
	if len(filters) == 0 {
		return wrap("delete", table, errors.New("delete without a filter is not allowed"))
	}
	if err := checkFilters(table, filters); err != nil {
		return wrap("delete", table, err)
	}
	where := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		where[i] = f.Column + " = ?"
		args[i] = f.Value
	}
	q := g.db.Rebind("DELETE FROM " + table + " WHERE " + strings.Join(where, " AND "))
	_, err := g.db.ExecContext(ctx, q, args...)
	return wrap("delete", table, err)
}
