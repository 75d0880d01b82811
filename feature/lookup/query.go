package lookup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Query is either a single identifier or an ordered list of identifiers.
// The zero value is an empty single query.
type Query struct {
	values []string
	many   bool
}

// Single builds a query for one identifier.
func Single(value string) Query {
	return Query{values: []string{value}}
}

// Many builds a set-membership query. Order is kept: it decides placeholder
// positions and the cache entry.
func Many(values ...string) Query {
	return Query{values: append([]string(nil), values...), many: true}
}

// IsMany reports whether q is a collection query.
func (q Query) IsMany() bool {
	return q.many
}

// Len returns the number of identifiers in q.
func (q Query) Len() int {
	return len(q.values)
}

// Value returns the identifier of a single query.
func (q Query) Value() string {
	if len(q.values) == 0 {
		return ""
	}
	return q.values[0]
}

// Values returns a copy of the identifiers.
func (q Query) Values() []string {
	return append([]string(nil), q.values...)
}

func (q Query) String() string {
	if !q.many {
		return strconv.Quote(q.Value())
	}
	quoted := make([]string, len(q.values))
	for i, v := range q.values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// MarshalJSON encodes a single query as a string and a collection as an array.
func (q Query) MarshalJSON() ([]byte, error) {
	if q.many {
		if q.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(q.values)
	}
	return json.Marshal(q.Value())
}

// UnmarshalJSON accepts either a string or an array of strings.
func (q *Query) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*q = Single(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("%w: expected a string or an array of strings", ErrInvalidQuery)
	}
	*q = Many(many...)
	return nil
}

// Operator is the comparison used against the input column.
type Operator string

const (
	OpEqual    Operator = "="
	OpNotEqual Operator = "!="
	OpLike     Operator = "LIKE"
	OpGlob     Operator = "GLOB"
	OpIn       Operator = "IN"
)

// ParseOperator normalizes user input. The empty string stays empty and
// means "use the default".
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.ToUpper(strings.TrimSpace(s)))
	switch op {
	case "", OpEqual, OpNotEqual, OpLike, OpGlob, OpIn:
		return op, nil
	case "<>":
		return OpNotEqual, nil
	case "==":
		return OpEqual, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, s)
	}
}

// Row is one result tuple; NULL values are empty strings.
type Row []string

// CacheKey identifies a lookup call by its canonicalized arguments. Every
// field owns its bytes, so keys built from request buffers stay valid after
// the request is recycled.
type CacheKey struct {
	Kind          string
	Query         string
	InputColumn   Column
	OutputColumns string
	Operator      Operator
}

func newCacheKey(q Query, in Column, out []Column, op Operator) CacheKey {
	cols := make([]string, len(out))
	for i, c := range out {
		cols[i] = string(c)
	}
	return CacheKey{
		Kind:          q.kind(),
		Query:         q.String(),
		InputColumn:   Column(strings.Clone(string(in))),
		OutputColumns: strings.Clone(strings.Join(cols, ",")),
		Operator:      Operator(strings.Clone(string(op))),
	}
}

func (q Query) kind() string {
	if q.many {
		return "many"
	}
	return "single"
}
