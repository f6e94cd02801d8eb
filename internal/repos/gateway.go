package repos

import (
	"context"
	"fmt"
	"sort"
)

const (
	TableProducts  = "products"
	TableInquiries = "inquiries"
)

// columns lists every column a gateway may read or write, per table.
// Table and column names are interpolated into queries, so nothing outside
// this map is accepted.
var columns = map[string][]string{
	TableProducts:  {"id", "name", "category", "price", "description", "image", "created_at"},
	TableInquiries: {"id", "product", "customer", "contact", "message", "status", "created_at"},
}

type Order struct {
	Column string
	Desc   bool
}

// Filter is an equality predicate.
type Filter struct {
	Column string
	Value  any
}

type Query struct {
	Order   []Order
	Filters []Filter
}

// NewestFirst orders by created_at descending.
func NewestFirst() Query {
	return Query{Order: []Order{{Column: "created_at", Desc: true}}}
}

// Gateway is a table-scoped query client for the hosted data backend.
// Select fills dest, a pointer to a slice of db/json tagged structs.
type Gateway interface {
	Select(ctx context.Context, table string, dest any, q Query) error
	Insert(ctx context.Context, table string, row map[string]any) error
	Delete(ctx context.Context, table string, filters ...Filter) error
}

// GatewayError carries the backend's human readable message.
type GatewayError struct {
	Op      string
	Table   string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Table)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Table: table, Message: err.Error(), Err: err}
}

func tableColumns(table string) ([]string, error) {
	cols, ok := columns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return cols, nil
}

func knownColumn(table, col string) bool {
	for _, c := range columns[table] {
		if c == col {
			return true
		}
	}
	return false
}

func checkQuery(table string, q Query) error {
	if _, err := tableColumns(table); err != nil {
		return err
	}
	for _, o := range q.Order {
		if !knownColumn(table, o.Column) {
			return fmt.Errorf("unknown column %q on %s", o.Column, table)
		}
	}
	return checkFilters(table, q.Filters)
}

func checkFilters(table string, filters []Filter) error {
	for _, f := range filters {
		if !knownColumn(table, f.Column) {
			return fmt.Errorf("unknown column %q on %s", f.Column, table)
		}
	}
	return nil
}

// rowKeys returns the row's keys sorted, rejecting unknown columns.
func rowKeys(table string, row map[string]any) ([]string, error) {
	if _, err := tableColumns(table); err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("empty row for %s", table)
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		if !knownColumn(table, k) {
			return nil, fmt.Errorf("unknown column %q on %s", k, table)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
