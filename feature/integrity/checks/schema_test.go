package checks

import (
	"context"
	"testing"

	"broad-babel/core/database/testdb"
	"broad-babel/feature/lookup/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(context.Background(), nil, "names", models.Name{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_NotAStruct(t *testing.T) {
	db, _ := testdb.Mock(t)
	report, err := CheckSchema(context.Background(), db, "names", "names")
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLite(t *testing.T) {
	db := testdb.Names(t, nil)

	report, err := CheckSchema(context.Background(), db, "", models.Name{})
	require.NoError(t, err)
	assert.Equal(t, "names", report.Table)
	assert.True(t, report.Matched)
	assert.Empty(t, report.MissingColumns)
	assert.Empty(t, report.TypeMismatches)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := testdb.Names(t, nil)

	report, err := CheckSchema(context.Background(), db, "other", models.Name{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := testdb.Mock(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("jump_id", "text", "YES", "", nil, "").
		AddRow("broad_sample", "text", "YES", "", nil, "").
		AddRow("standard_key", "varchar(255)", "YES", "", nil, "").
		AddRow("pert_type", "text", "YES", "", nil, "").
		AddRow("plate_type", "text", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `names`").WillReturnRows(rows)

	report, err := CheckSchema(context.Background(), db, "names", models.Name{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"control_type", "NCBI_Gene_ID"}, report.MissingColumns)
	assert.Equal(t, []string{"standard_key: expected text, got varchar(255)"}, report.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "jump_id", parseGormColumn("column:jump_id;type:text"))
	assert.Equal(t, "text", parseGormType("column:jump_id;type:text"))
	assert.Empty(t, parseGormColumn("primaryKey"))
	assert.Empty(t, parseGormType("column:x"))
}
