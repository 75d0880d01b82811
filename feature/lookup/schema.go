package lookup

import (
	"context"
	"fmt"
	"regexp"

	"broad-babel/core/database"

	"gorm.io/gorm"
)

// Column names a column of the lookup table.
type Column string

// Well-known columns of the names table.
const (
	JumpID       Column = "jump_id"
	BroadSample  Column = "broad_sample"
	StandardKey  Column = "standard_key"
	PertType     Column = "pert_type"
	PlateType    Column = "plate_type"
	ControlType  Column = "control_type"
	NCBIGeneID   Column = "NCBI_Gene_ID"
	DefaultTable        = "names"
)

// DefaultColumns is the allow-list used when none is configured and the
// table cannot be inspected.
var DefaultColumns = []Column{JumpID, BroadSample, StandardKey, PertType, PlateType, ControlType, NCBIGeneID}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s can be placed in a statement unquoted.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Schema is the allow-list of names that may be interpolated into statements.
type Schema struct {
	table   string
	columns []Column
	allowed map[Column]struct{}
}

// NewSchema validates the table and column names and builds a schema.
func NewSchema(table string, columns ...Column) (*Schema, error) {
	if !IsIdentifier(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidColumn, table)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns", ErrInvalidColumn, table)
	}

	s := &Schema{table: table, allowed: make(map[Column]struct{}, len(columns))}
	for _, c := range columns {
		if !IsIdentifier(string(c)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, c)
		}
		if _, dup := s.allowed[c]; dup {
			continue
		}
		s.allowed[c] = struct{}{}
		s.columns = append(s.columns, c)
	}
	return s, nil
}

// DiscoverSchema builds the allow-list from the columns the table defines.
func DiscoverSchema(ctx context.Context, db *gorm.DB, table string) (*Schema, error) {
	if !IsIdentifier(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidColumn, table)
	}

	cols, err := database.GetTableColumns(ctx, db, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s not found", ErrDataAccess, table)
	}

	columns := make([]Column, len(cols))
	for i, c := range cols {
		columns[i] = Column(c.Name)
	}
	return NewSchema(table, columns...)
}

// SchemaFromConfig uses the configured allow-list, or inspects the table when
// the list is empty.
func SchemaFromConfig(ctx context.Context, db *gorm.DB, cfg Config) (*Schema, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	if len(cfg.Columns) == 0 {
		return DiscoverSchema(ctx, db, table)
	}

	columns := make([]Column, len(cfg.Columns))
	for i, c := range cfg.Columns {
		columns[i] = Column(c)
	}
	return NewSchema(table, columns...)
}

// Table returns the table name.
func (s *Schema) Table() string {
	return s.table
}

// Columns returns the allowed columns in their declared order.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Has reports whether c is allowed.
func (s *Schema) Has(c Column) bool {
	_, ok := s.allowed[c]
	return ok
}

// Validate returns ErrInvalidColumn for the first column outside the schema.
func (s *Schema) Validate(cols ...Column) error {
	for _, c := range cols {
		if !s.Has(c) {
			return fmt.Errorf("%w: %q is not a column of %s", ErrInvalidColumn, c, s.table)
		}
	}
	return nil
}
