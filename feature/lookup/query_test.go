package lookup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryJSON(t *testing.T) {
	var q Query
	require.NoError(t, json.Unmarshal([]byte(`"BRD-K00001"`), &q))
	assert.False(t, q.IsMany())
	assert.Equal(t, "BRD-K00001", q.Value())

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &q))
	assert.True(t, q.IsMany())
	assert.Equal(t, []string{"a", "b"}, q.Values())

	// A one-element list stays a collection.
	require.NoError(t, json.Unmarshal([]byte(`["a"]`), &q))
	assert.True(t, q.IsMany())

	err := json.Unmarshal([]byte(`42`), &q)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	out, err := json.Marshal(Many())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}

func TestManyCopiesInput(t *testing.T) {
	ids := []string{"a", "b"}
	q := Many(ids...)
	ids[0] = "z"
	assert.Equal(t, []string{"a", "b"}, q.Values())
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in      string
		want    Operator
		wantErr bool
	}{
		{"", "", false},
		{"=", OpEqual, false},
		{"==", OpEqual, false},
		{"<>", OpNotEqual, false},
		{" like ", OpLike, false},
		{"glob", OpGlob, false},
		{"in", OpIn, false},
		{">", "", true},
		{"= 1 OR 1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOperator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCacheKey(t *testing.T) {
	// Joined lists must not collide with a single value containing the separator.
	a := newCacheKey(Many("a", "b"), BroadSample, []Column{StandardKey}, OpIn)
	b := newCacheKey(Single(`"a", "b"`), BroadSample, []Column{StandardKey}, OpIn)
	c := newCacheKey(Many("a, b"), BroadSample, []Column{StandardKey}, OpIn)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)

	assert.Equal(t, a, newCacheKey(Many("a", "b"), BroadSample, []Column{StandardKey}, OpIn))
	assert.NotEqual(t, a, newCacheKey(Many("a", "b"), BroadSample, []Column{StandardKey, JumpID}, OpIn))
}
