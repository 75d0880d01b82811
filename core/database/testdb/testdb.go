// Package testdb builds small names tables for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"broad-babel/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Name is one seeded record. Nil pointers are stored as NULL.
type Name struct {
	JumpID      string
	BroadSample string
	StandardKey string
	PertType    string
	PlateType   string
	ControlType *string
	NCBIGeneID  *string
}

// Columns lists the names table columns in storage order.
var Columns = []string{"jump_id", "broad_sample", "standard_key", "pert_type", "plate_type", "control_type", "NCBI_Gene_ID"}

func ptr(s string) *string { return &s }

// Fixture is the default set of records.
var Fixture = []Name{
	{"JCP2022_000001", "BRD-K00001", "GENE1", "trt", "compound", nil, nil},
	{"JCP2022_000002", "BRD-K00002", "GENE2", "trt", "compound", nil, ptr("1234")},
	{"JCP2022_000003", "BRD-K00003", "GENE3", "control", "compound", ptr("negcon"), nil},
	{"JCP2022_000004", "BRD-K00004", "GENE4", "trt", "orf", nil, ptr("5678")},
	{"JCP2022_000005", "BRD-DUP", "GENE5A", "trt", "crispr", nil, nil},
	{"JCP2022_000006", "BRD-DUP", "GENE5B", "trt", "crispr", nil, nil},
	{"JCP2022_000007", "BRD-K00007", `GENE "7", alt`, "trt", "compound", nil, nil},
}

// Names opens a file-backed sqlite database holding a names table seeded
// with records, or with Fixture when records is nil.
func Names(t testing.TB, records []Name) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "names.db"),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.Exec(`CREATE TABLE names (
		jump_id TEXT,
		broad_sample TEXT,
		standard_key TEXT,
		pert_type TEXT,
		plate_type TEXT,
		control_type TEXT,
		NCBI_Gene_ID TEXT
	)`).Error
	if err != nil {
		t.Fatalf("failed to create names table: %v", err)
	}

	if records == nil {
		records = Fixture
	}
	for _, r := range records {
		err := db.Exec("INSERT INTO names VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.JumpID, r.BroadSample, r.StandardKey, r.PertType, r.PlateType, r.ControlType, r.NCBIGeneID).Error
		if err != nil {
			t.Fatalf("failed to seed names table: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Mock opens a gorm handle over go-sqlmock using the mysql dialector.
// Statements are matched verbatim.
func Mock(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to open mock sql db: %v", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, mock
}
