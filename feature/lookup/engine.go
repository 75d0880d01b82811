package lookup

import (
	"context"
	"fmt"
	"strings"

	"broad-babel/core/memo"
	"broad-babel/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs parameterized lookups against the names table and memoizes
// the results for the lifetime of the process.
type Engine struct {
	db      *gorm.DB
	schema  *Schema
	cache   memo.Cache[CacheKey, []Row]
	metrics *Metrics
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache replaces the default in-memory cache.
func WithCache(c memo.Cache[CacheKey, []Row]) Option {
	return func(e *Engine) { e.cache = c }
}

// WithMetrics records lookup counters on m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over db restricted to schema.
func NewEngine(db *gorm.DB, schema *Schema, opts ...Option) *Engine {
	e := &Engine{
		db:     db,
		schema: schema,
		cache:  memo.NewMemory[CacheKey, []Row](),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the allow-list the engine validates against.
func (e *Engine) Schema() *Schema {
	return e.schema
}

// RunQuery selects outputs from the rows whose input column matches q.
//
// A single query compares with op, "=" when op is empty. A collection query
// always uses IN with one placeholder per element. Identical calls are served
// from the cache without touching the database. The returned rows are shared
// with the cache and must not be modified.
func (e *Engine) RunQuery(ctx context.Context, q Query, input Column, outputs []Column, op Operator) ([]Row, error) {
	op, err := resolveOperator(q, op)
	if err != nil {
		return nil, err
	}
	if q.IsMany() && q.Len() == 0 {
		return nil, fmt.Errorf("%w: empty identifier list", ErrInvalidQuery)
	}
	if !q.IsMany() && q.Len() != 1 {
		return nil, fmt.Errorf("%w: single query without a value", ErrInvalidQuery)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: no output columns", ErrInvalidQuery)
	}
	if err := e.schema.Validate(input); err != nil {
		return nil, err
	}
	if err := e.schema.Validate(outputs...); err != nil {
		return nil, err
	}

	key := newCacheKey(q, input, outputs, op)
	// The load is shared by every caller waiting on key, so one caller
	// cancelling must not fail the others.
	rows, hit, err := e.cache.GetOrLoad(key, func() ([]Row, error) {
		return e.fetch(context.WithoutCancel(ctx), q, input, outputs, op)
	})
	e.metrics.observe(hit, err)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Lookup",
		zap.Stringer("query", q),
		zap.String("input", string(input)),
		zap.Int("rows", len(rows)),
		zap.Bool("cached", hit),
	)
	return rows, nil
}

func (e *Engine) fetch(ctx context.Context, q Query, input Column, outputs []Column, op Operator) ([]Row, error) {
	stmt := BuildStatement(e.schema.Table(), input, outputs, op, q.Len())
	values := q.Values()
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	result := []Row{}
	err := e.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		rows, err := tx.Raw(stmt, args...).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			vals := make([]any, len(outputs))
			ptrs := make([]any, len(outputs))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			result = append(result, Row(utils.ToStrings(vals)))
		}
		return rows.Err()
	})
	if err != nil {
		e.logger.Error("Lookup failed", zap.String("statement", stmt), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	return result, nil
}

func resolveOperator(q Query, op Operator) (Operator, error) {
	if q.IsMany() {
		return OpIn, nil
	}
	op, err := ParseOperator(string(op))
	if err != nil {
		return "", err
	}
	if op == "" {
		return OpEqual, nil
	}
	return op, nil
}

// BuildStatement renders the SELECT for n bound values. Names must already
// be validated against a Schema.
func BuildStatement(table string, input Column, outputs []Column, op Operator, n int) string {
	cols := make([]string, len(outputs))
	for i, c := range outputs {
		cols[i] = string(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s %s (%s)",
		strings.Join(cols, ", "), table, input, op, placeholders)
}
