package lookup

import (
	"context"
	"testing"

	"broad-babel/core/database/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	s, err := NewSchema("names", BroadSample, StandardKey, BroadSample)
	require.NoError(t, err)
	assert.Equal(t, []Column{BroadSample, StandardKey}, s.Columns())
	assert.True(t, s.Has(StandardKey))
	assert.False(t, s.Has(JumpID))
	assert.ErrorIs(t, s.Validate(JumpID), ErrInvalidColumn)

	_, err = NewSchema("names; --", BroadSample)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = NewSchema("names", "broad sample")
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = NewSchema("names")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestDiscoverSchema(t *testing.T) {
	db := testdb.Names(t, nil)
	ctx := context.Background()

	s, err := DiscoverSchema(ctx, db, "names")
	require.NoError(t, err)
	assert.Equal(t, DefaultColumns, s.Columns())

	_, err = DiscoverSchema(ctx, db, "missing")
	assert.ErrorIs(t, err, ErrDataAccess)
}

func TestSchemaFromConfig(t *testing.T) {
	db := testdb.Names(t, nil)
	ctx := context.Background()

	s, err := SchemaFromConfig(ctx, db, Config{Columns: []string{"broad_sample", "standard_key"}})
	require.NoError(t, err)
	assert.Equal(t, "names", s.Table())
	assert.Equal(t, []Column{BroadSample, StandardKey}, s.Columns())

	s, err = SchemaFromConfig(ctx, db, Config{Table: "names"})
	require.NoError(t, err)
	assert.Len(t, s.Columns(), 7)
}
