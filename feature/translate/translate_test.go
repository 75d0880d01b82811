package translate

import (
	"context"
	"errors"
	"testing"

	"broad-babel/core/database/testdb"
	"broad-babel/feature/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) RunQuery(ctx context.Context, q lookup.Query, input lookup.Column, outputs []lookup.Column, op lookup.Operator) ([]lookup.Row, error) {
	args := m.Called(ctx, q, input, outputs, op)
	if rows := args.Get(0); rows != nil {
		return rows.([]lookup.Row), args.Error(1)
	}
	return nil, args.Error(1)
}

func sqliteTranslator(t *testing.T) *Translator {
	db := testdb.Names(t, nil)
	schema, err := lookup.NewSchema(lookup.DefaultTable, lookup.DefaultColumns...)
	require.NoError(t, err)
	return New(lookup.NewEngine(db, schema), nil)
}

func TestBroadToStandard_Single(t *testing.T) {
	tr := sqliteTranslator(t)
	ctx := context.Background()

	t.Run("One match", func(t *testing.T) {
		got, err := tr.BroadToStandard(ctx, lookup.Single("BRD-K00001"))
		require.NoError(t, err)
		assert.True(t, got.IsScalar())
		assert.Equal(t, "GENE1", got.Value)
	})

	t.Run("No match", func(t *testing.T) {
		_, err := tr.BroadToStandard(ctx, lookup.Single("BRD-NONE"))
		assert.ErrorIs(t, err, ErrCountMismatch)

		var countErr *CountMismatchError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, []string{"BRD-NONE"}, countErr.Missing)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		_, err := tr.BroadToStandard(ctx, lookup.Single("BRD-DUP"))
		assert.ErrorIs(t, err, ErrMultipleResults)

		var multiErr *MultipleResultsError
		require.True(t, errors.As(err, &multiErr))
		assert.Equal(t, "BRD-DUP", multiErr.Identifier)
		assert.ElementsMatch(t, []string{"GENE5A", "GENE5B"}, multiErr.Values)
	})
}

func TestBroadToStandard_Many(t *testing.T) {
	tr := sqliteTranslator(t)
	ctx := context.Background()

	t.Run("All found", func(t *testing.T) {
		got, err := tr.BroadToStandard(ctx, lookup.Many("BRD-K00004", "BRD-K00001", "BRD-K00002"))
		require.NoError(t, err)
		assert.False(t, got.IsScalar())
		assert.Equal(t, map[string]string{
			"BRD-K00001": "GENE1",
			"BRD-K00002": "GENE2",
			"BRD-K00004": "GENE4",
		}, got.Mapping)
	})

	t.Run("One element is still a mapping", func(t *testing.T) {
		got, err := tr.BroadToStandard(ctx, lookup.Many("BRD-K00003"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"BRD-K00003": "GENE3"}, got.Mapping)
	})

	t.Run("Duplicates collapse", func(t *testing.T) {
		got, err := tr.BroadToStandard(ctx, lookup.Many("BRD-K00001", "BRD-K00001"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"BRD-K00001": "GENE1"}, got.Mapping)
	})

	t.Run("Missing identifier", func(t *testing.T) {
		_, err := tr.BroadToStandard(ctx, lookup.Many("BRD-K00001", "BRD-NONE"))
		var countErr *CountMismatchError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, 2, countErr.Expected)
		assert.Equal(t, 1, countErr.Got)
		assert.Equal(t, []string{"BRD-NONE"}, countErr.Missing)
	})

	t.Run("Ambiguous identifier", func(t *testing.T) {
		_, err := tr.BroadToStandard(ctx, lookup.Many("BRD-K00001", "BRD-DUP"))
		assert.ErrorIs(t, err, ErrMultipleResults)
	})

	t.Run("Empty list", func(t *testing.T) {
		_, err := tr.BroadToStandard(ctx, lookup.Many())
		assert.ErrorIs(t, err, lookup.ErrInvalidQuery)
	})
}

func TestTranslate_PairsByRowValue(t *testing.T) {
	runner := new(mockRunner)
	tr := New(runner, nil)
	q := lookup.Many("a", "b")

	// Rows arrive in the opposite order of the request.
	runner.On("RunQuery", mock.Anything, q, lookup.BroadSample, []lookup.Column{lookup.BroadSample, lookup.StandardKey}, lookup.OpIn).
		Return([]lookup.Row{{"b", "B"}, {"a", "A"}}, nil)

	got, err := tr.BroadToStandard(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "A", "b": "B"}, got.Mapping)
	runner.AssertExpectations(t)
}

func TestTranslate_RepeatedRowsWithSameValue(t *testing.T) {
	runner := new(mockRunner)
	tr := New(runner, nil)

	runner.On("RunQuery", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]lookup.Row{{"a", "A"}, {"a", "A"}}, nil)

	got, err := tr.BroadToStandard(context.Background(), lookup.Many("a"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "A"}, got.Mapping)
}

func TestTranslate_UnrequestedRows(t *testing.T) {
	runner := new(mockRunner)
	tr := New(runner, nil)

	runner.On("RunQuery", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]lookup.Row{{"a", "A"}, {"A", "A"}}, nil)

	_, err := tr.BroadToStandard(context.Background(), lookup.Many("a"))
	var countErr *CountMismatchError
	require.True(t, errors.As(err, &countErr))
	assert.Equal(t, 1, countErr.Expected)
	assert.Equal(t, 2, countErr.Got)
	assert.Empty(t, countErr.Missing)
}

func TestTranslate_PropagatesDataAccess(t *testing.T) {
	runner := new(mockRunner)
	tr := New(runner, nil)

	runner.On("RunQuery", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, lookup.ErrDataAccess)

	_, err := tr.Translate(context.Background(), lookup.Single("a"), lookup.JumpID, lookup.StandardKey)
	assert.ErrorIs(t, err, lookup.ErrDataAccess)
}

func TestTranslate_OtherColumns(t *testing.T) {
	tr := sqliteTranslator(t)

	got, err := tr.Translate(context.Background(), lookup.Single("JCP2022_000004"), lookup.JumpID, lookup.NCBIGeneID)
	require.NoError(t, err)
	assert.Equal(t, "5678", got.Value)
}

func TestErrorMessages(t *testing.T) {
	err := &CountMismatchError{Expected: 2, Got: 1, Missing: []string{"x"}}
	assert.Equal(t, "count mismatch: expected 2 results, got 1 (missing: x)", err.Error())

	multi := &MultipleResultsError{Identifier: "x", Values: []string{"A", "B"}}
	assert.Equal(t, `multiple results: "x" resolved to 2 values (A, B)`, multi.Error())
	assert.False(t, errors.Is(multi, ErrCountMismatch))
}
