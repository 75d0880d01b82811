// Package database handles connections to the name lookup database and
// schema inspection.
//
// It wraps GORM to open the table either from a local sqlite file (the
// normal case, using the cgo driver or the pure Go modernc driver) or from a
// MySQL server holding a copy of the same table.
//
// # Connect
//
// Connect picks the dialector from Config.Driver. sqlite files are opened
// read-only by default and limited to one open connection.
//
// # Schema Inspection
//
// GetTableColumns returns the columns of a table in storage order. The table
// exporter uses it for the header line and the lookup engine uses it to build
// its column allow-list.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(ctx, db, "names")
package database
