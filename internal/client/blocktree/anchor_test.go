package blocktree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/pkg/api"
)

func nodes(ids ...string) []api.Node {
	result := make([]api.Node, len(ids))
	for i, id := range ids {
		result[i] = api.Node{ID: id, Type: "paragraph"}
	}
	return result
}

func TestAnchor_Advance(t *testing.T) {
	tests := []struct {
		name    string
		anchor  Anchor
		results []api.Node
		added   int
		wantID  string
		wantErr bool
	}{
		{
			name:    "after anchor in the middle",
			anchor:  After("b"),
			results: nodes("a", "b", "x", "y", "c"),
			added:   2,
			wantID:  "y",
		},
		{
			name:    "after anchor at the end",
			anchor:  After("c"),
			results: nodes("a", "b", "c", "x"),
			added:   1,
			wantID:  "x",
		},
		{
			name:    "end anchor takes last result",
			anchor:  AtEnd(),
			results: nodes("a", "b", "x"),
			added:   1,
			wantID:  "x",
		},
		{
			name:    "start anchor takes last added",
			anchor:  AtStart(),
			results: nodes("x", "y", "a"),
			added:   2,
			wantID:  "y",
		},
		{
			name:    "hyphenated ids match",
			anchor:  After("ab12cd34"),
			results: nodes("ffff-0000", "AB12-CD34", "new1"),
			added:   1,
			wantID:  "new1",
		},
		{
			name:    "anchor missing from results",
			anchor:  After("gone"),
			results: nodes("a", "b"),
			added:   1,
			wantErr: true,
		},
		{
			name:    "index past the end",
			anchor:  After("b"),
			results: nodes("a", "b", "x"),
			added:   2,
			wantErr: true,
		},
		{
			name:    "start with too few results",
			anchor:  AtStart(),
			results: nodes("x"),
			added:   2,
			wantErr: true,
		},
		{
			name:    "empty results",
			anchor:  AtEnd(),
			results: nil,
			added:   1,
			wantErr: true,
		},
		{
			name:    "nothing added",
			anchor:  After("a"),
			results: nodes("a"),
			added:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.anchor.Advance(tt.results, tt.added)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrContractViolation)
				assert.Equal(t, tt.anchor, next)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, next.ID())
			assert.False(t, next.IsEnd())
		})
	}
}

func TestAnchor_Position(t *testing.T) {
	assert.Nil(t, AtEnd().Position())
	assert.Equal(t, &api.Position{Type: api.PositionStart}, AtStart().Position())
	assert.Equal(t,
		&api.Position{Type: api.PositionAfterBlock, AfterBlock: &api.BlockRef{ID: "abc"}},
		After("abc").Position())
}

func TestAfter_EmptyID(t *testing.T) {
	a := After("")
	assert.True(t, a.IsEnd())
	assert.Equal(t, AtEnd(), a)
	assert.Equal(t, "end", a.String())
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab12-cd34", "ab12cd34"},
		{"AB12CD34", "ab12cd34"},
		{"1a2b3c4d-0000-4000-8000-00000000000A", "1a2b3c4d000040008000" + "00000000000a"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeID(tt.in), tt.in)
	}
	assert.True(t, SameID("ab12-cd34", "ab12cd34"))
	assert.False(t, SameID("ab12", "ab13"))
}
