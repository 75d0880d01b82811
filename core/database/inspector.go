package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a table, in storage order.
type ColumnInfo struct {
	// Name keeps the exact spelling used by the schema.
	Name string
	// Type is the lowercased declared type.
	Type    string
	NotNull bool
	Primary bool
}

// GetTableColumns retrieves the column definitions for a given table.
// The result follows the order in which the table defines its columns.
// An unknown table yields an empty slice on sqlite.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []sqliteColumn
		if err := db.WithContext(ctx).Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Name:    col.Name,
				Type:    strings.ToLower(col.Type),
				NotNull: col.Notnull == 1,
				Primary: col.Pk > 0,
			})
		}
		return columns, nil
	}

	// MySQL: SHOW COLUMNS keeps the definition order as well
	type mysqlColumn struct {
		Field   string
		Type    string
		Null    string
		Key     string
		Default *string
		Extra   string
	}
	var mysqlCols []mysqlColumn
	err := db.WithContext(ctx).Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&mysqlCols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for _, col := range mysqlCols {
		columns = append(columns, ColumnInfo{
			Name:    col.Field,
			Type:    strings.ToLower(col.Type),
			NotNull: strings.EqualFold(col.Null, "NO"),
			Primary: col.Key == "PRI",
		})
	}
	return columns, nil
}

// ColumnNames returns just the names of cols, preserving order.
func ColumnNames(cols []ColumnInfo) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
