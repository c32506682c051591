// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

// Op is a filter operator.
type Op int

const (
	OpEq Op = iota
	OpNeq
	// OpContains matches rows whose array column holds the value.
	OpContains
	// OpNotNull matches rows where the column is present and not null.
	OpNotNull
)

// Filter restricts a query to rows where Column satisfies Op against Value.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Order sorts results by Column.
type Order struct {
	Column    string
	Ascending bool
}

// Query describes a read, update or delete against one table. Build it with
// From and the chained helpers:
//
//	backend.From("testimonials").Eq("featured", true).Order("display_order", true).Limit(3)
type Query struct {
	Table   string
	Filters []Filter
	Orders  []Order
	Max     int // 0 means no limit
}

// From starts a query against table.
func From(table string) *Query {
	return &Query{Table: table}
}

// Eq adds an equality filter.
func (q *Query) Eq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

// Neq adds an inequality filter. Rows where the column is null never match.
func (q *Query) Neq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpNeq, Value: value})
	return q
}

// Contains matches rows whose array column includes value.
func (q *Query) Contains(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpContains, Value: value})
	return q
}

// NotNull matches rows where column holds a value.
func (q *Query) NotNull(column string) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpNotNull})
	return q
}

// Order appends a sort key. Earlier keys take precedence.
func (q *Query) Order(column string, ascending bool) *Query {
	q.Orders = append(q.Orders, Order{Column: column, Ascending: ascending})
	return q
}

// Limit caps the number of returned rows. It is applied after ordering.
func (q *Query) Limit(n int) *Query {
	if n < 0 {
		n = 0
	}
	q.Max = n
	return q
}
