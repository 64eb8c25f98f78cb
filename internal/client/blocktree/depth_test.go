package blocktree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/internal/models"
)

func TestMaxDepth(t *testing.T) {
	tests := []struct {
		name   string
		blocks []models.Block
		want   int
	}{
		{name: "nil list", blocks: nil, want: 0},
		{name: "leaves only", blocks: leaves("l", 3), want: 0},
		{
			name:   "empty children field counts",
			blocks: []models.Block{{Type: "toggle", Children: []models.Block{}}},
			want:   1,
		},
		{name: "two levels", blocks: []models.Block{para("a", para("b", para("c")))}, want: 2},
		{name: "chain of five", blocks: []models.Block{chain("c", 5)}, want: 5},
		{
			name:   "deepest sibling wins",
			blocks: []models.Block{para("a", para("b")), chain("c", 4), para("d")},
			want:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxDepth(tt.blocks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxDepth_DoesNotMutate(t *testing.T) {
	blocks := []models.Block{chain("c", 3), para("x", para("y"))}
	before := renderBlocks(blocks)

	_, err := MaxDepth(blocks)
	require.NoError(t, err)
	assert.Equal(t, before, renderBlocks(blocks))
}

func TestMaxDepth_Cycle(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		blocks := []models.Block{para("a")}
		blocks[0].Children = blocks

		_, err := MaxDepth(blocks)
		assert.ErrorIs(t, err, ErrContractViolation)
	})

	t.Run("indirect", func(t *testing.T) {
		outer := []models.Block{para("a")}
		inner := []models.Block{para("b")}
		outer[0].Children = inner
		inner[0].Children = outer

		_, err := MaxDepth(outer)
		assert.ErrorIs(t, err, ErrContractViolation)
	})

	t.Run("shared subtree is not a cycle", func(t *testing.T) {
		shared := []models.Block{para("x")}
		blocks := []models.Block{para("a"), para("b")}
		blocks[0].Children = shared
		blocks[1].Children = shared

		depth, err := MaxDepth(blocks)
		require.NoError(t, err)
		assert.Equal(t, 1, depth)
	})

	t.Run("children slice of own siblings is not a cycle", func(t *testing.T) {
		x := []models.Block{para("x0"), para("x1"), para("x2")}
		x[2].Children = x[0:1]

		depth, err := MaxDepth(x)
		require.NoError(t, err)
		assert.Equal(t, 1, depth)

		res, err := fitsInline(x[2])
		require.NoError(t, err)
		assert.True(t, res)
	})
}

func TestAnalyze_BlockShapes(t *testing.T) {
	deep := chain("d", InlineNestingBudget+1)
	wide := para("w", leaves("l", MaxSiblingsPerAppend+1)...)
	blocks := []models.Block{para("a", para("b")), deep, wide, para("leaf")}

	shape, err := analyze(blocks)
	require.NoError(t, err)
	assert.Equal(t, InlineNestingBudget+1, shape.depth)
	assert.Equal(t, MaxSiblingsPerAppend+1, shape.widest)
	assert.False(t, shape.fits())

	want := []bool{true, false, false, true}
	for i := range blocks {
		got, err := shape.fitsBlock(&blocks[i])
		require.NoError(t, err)
		assert.Equal(t, want[i], got, "block %d", i)

		inline, err := fitsInline(blocks[i])
		require.NoError(t, err)
		assert.Equal(t, inline, got, "block %d", i)
	}

	// вложенные блоки тоже посчитаны за один проход
	assert.Len(t, shape.blocks, countOutgoing(toOutgoingList(blocks)))
}

func TestFitsInline(t *testing.T) {
	tests := []struct {
		name  string
		block models.Block
		want  bool
	}{
		{name: "leaf", block: para("a"), want: true},
		{name: "depth at budget", block: chain("c", InlineNestingBudget), want: true},
		{name: "depth over budget", block: chain("c", InlineNestingBudget+1), want: false},
		{name: "wide children", block: para("p", leaves("l", MaxSiblingsPerAppend+1)...), want: false},
		{name: "children at limit", block: para("p", leaves("l", MaxSiblingsPerAppend)...), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fitsInline(tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
