package lookup

import "errors"

var (
	// ErrDataAccess wraps failures of the underlying database: malformed
	// statements, missing tables or columns, storage errors.
	ErrDataAccess = errors.New("data access error")
	// ErrInvalidColumn is returned for a table or column outside the schema.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidOperator is returned for comparison operators that are not allowed.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrInvalidQuery is returned for queries that cannot produce a statement.
	ErrInvalidQuery = errors.New("invalid query")
)
