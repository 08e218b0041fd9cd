package docstore

import (
	"sort"
	"time"
)

// Operator is a filter comparison.
type Operator string

const (
	Equal          Operator = "=="
	GreaterThan    Operator = ">"
	GreaterOrEqual Operator = ">="
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Filter restricts a query to documents whose field compares true against Value.
// Documents missing the field never match.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Order sorts query results by one field. Documents missing the field are excluded.
type Order struct {
	Field     string
	Direction Direction
}

// Query describes filters, ordering and a result cap. A zero Limit means no cap.
type Query struct {
	Filters []Filter
	OrderBy *Order
	Limit   int
}

// NewQuery returns an empty query.
func NewQuery() Query { return Query{} }

// Where returns a copy of q with an extra filter.
func (q Query) Where(field string, op Operator, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderByField returns a copy of q sorted by field.
func (q Query) OrderByField(field string, dir Direction) Query {
	q.OrderBy = &Order{Field: field, Direction: dir}
	return q
}

// WithLimit returns a copy of q capped at n results.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// applyQuery evaluates q in process. It backs the memory store and the SQL store.
func applyQuery(docs []Document, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if matchesAll(d.Fields, q.Filters) {
			if q.OrderBy != nil {
				if _, ok := d.Fields[q.OrderBy.Field]; !ok {
					continue
				}
			}
			out = append(out, d)
		}
	}

	if q.OrderBy != nil {
		field, desc := q.OrderBy.Field, q.OrderBy.Direction == Descending
		sort.SliceStable(out, func(i, j int) bool {
			c, ok := compareValues(out[i].Fields[field], out[j].Fields[field])
			if !ok || c == 0 {
				return out[i].ID < out[j].ID
			}
			if desc {
				return c > 0
			}
			return c < 0
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matchesAll(fields Fields, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok {
			return false
		}
		c, ok := compareValues(v, normalizeValue(f.Value))
		if !ok {
			return false
		}
		switch f.Op {
		case Equal:
			if c != 0 {
				return false
			}
		case GreaterThan:
			if c <= 0 {
				return false
			}
		case GreaterOrEqual:
			if c < 0 {
				return false
			}
		case LessThan:
			if c >= 0 {
				return false
			}
		case LessOrEqual:
			if c > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues orders two normalized values. ok is false when the types are not comparable.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmpOrdered(av, bv), true
		case float64:
			return cmpOrdered(float64(av), bv), true
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return cmpOrdered(av, float64(bv)), true
		case float64:
			return cmpOrdered(av, bv), true
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmpOrdered(av, bv), true
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, true
			case !av:
				return -1, true
			default:
				return 1, true
			}
		}
	}
	return 0, false
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
