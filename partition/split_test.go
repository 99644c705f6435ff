package partition_test

import (
	"fmt"
	"testing"

	"github.com/plus3/blockie/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInterior(t *testing.T) {
	parent := partition.Rect{X: 2, Y: 3, Width: 6, Height: 5}
	shot := partition.Shot{X: 4, Y: 5}

	children := partition.Split(parent, shot)
	require.Len(t, children, 4)

	assert.Equal(t, partition.Rect{X: 2, Y: 3, Width: 6, Height: 2}, children[0])
	assert.Equal(t, partition.Rect{X: 2, Y: 6, Width: 6, Height: 2}, children[1])
	assert.Equal(t, partition.Rect{X: 2, Y: 3, Width: 2, Height: 5}, children[2])
	assert.Equal(t, partition.Rect{X: 5, Y: 3, Width: 3, Height: 5}, children[3])

	for _, c := range children {
		assert.LessOrEqual(t, c.Area(), parent.Area())
		assert.GreaterOrEqual(t, c.X, parent.X)
		assert.GreaterOrEqual(t, c.Y, parent.Y)
		assert.LessOrEqual(t, c.Right(), parent.Right())
		assert.LessOrEqual(t, c.Bottom(), parent.Bottom())
		assert.False(t, c.ContainsCell(shot.X, shot.Y))
	}
}

// Every child of an interior shot loses at least the shot's row or column.
func TestSplitChildrenExcludeShotLines(t *testing.T) {
	for w := 3; w <= 6; w++ {
		for h := 3; h <= 6; h++ {
			parent := partition.Rect{Width: w, Height: h}
			for x := 1; x < w-1; x++ {
				for y := 1; y < h-1; y++ {
					children := partition.Split(parent, partition.Shot{X: x, Y: y})
					require.Len(t, children, 4)
					for _, c := range children {
						assert.LessOrEqual(t, c.Area(), parent.Area()-min(w, h))
					}
				}
			}
		}
	}
}

func TestSplitCorners(t *testing.T) {
	parent := partition.Rect{Width: 3, Height: 3}

	tests := []struct {
		shot     partition.Shot
		expected []partition.Rect
	}{
		{
			shot: partition.Shot{X: 0, Y: 0},
			expected: []partition.Rect{
				{X: 0, Y: 1, Width: 3, Height: 2},
				{X: 1, Y: 0, Width: 2, Height: 3},
			},
		},
		{
			shot: partition.Shot{X: 2, Y: 2},
			expected: []partition.Rect{
				{X: 0, Y: 0, Width: 3, Height: 2},
				{X: 0, Y: 0, Width: 2, Height: 3},
			},
		},
		{
			shot: partition.Shot{X: 3, Y: 3},
			expected: []partition.Rect{
				{X: 0, Y: 0, Width: 3, Height: 3},
				{X: 0, Y: 0, Width: 3, Height: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shot.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, partition.Split(parent, tt.shot))
		})
	}
}

func TestSplitSingleCell(t *testing.T) {
	assert.Empty(t, partition.Split(partition.Rect{X: 4, Y: 4, Width: 1, Height: 1}, partition.Shot{X: 4, Y: 4}))
}

func TestBoundsOverlaps(t *testing.T) {
	r := partition.Rect{X: 2, Y: 2, Width: 3, Height: 3}

	tests := []struct {
		shot      partition.Shot
		inclusive bool
		strict    bool
	}{
		{partition.Shot{X: 2, Y: 2}, true, true},
		{partition.Shot{X: 4, Y: 4}, true, true},
		{partition.Shot{X: 5, Y: 3}, true, false},
		{partition.Shot{X: 3, Y: 5}, true, false},
		{partition.Shot{X: 5, Y: 5}, true, false},
		{partition.Shot{X: 1, Y: 3}, false, false},
		{partition.Shot{X: 6, Y: 3}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.shot.String(), func(t *testing.T) {
			assert.Equal(t, tt.inclusive, partition.BoundsInclusive.Overlaps(r, tt.shot))
			assert.Equal(t, tt.strict, partition.BoundsStrict.Overlaps(r, tt.shot))
		})
	}
}

func TestParseBounds(t *testing.T) {
	b, err := partition.ParseBounds("strict")
	require.NoError(t, err)
	assert.Equal(t, partition.BoundsStrict, b)

	b, err = partition.ParseBounds("")
	require.NoError(t, err)
	assert.Equal(t, partition.BoundsInclusive, b)

	_, err = partition.ParseBounds("loose")
	assert.Error(t, err)

	assert.Equal(t, "inclusive", partition.BoundsInclusive.String())
	assert.Equal(t, "Bounds(9)", partition.Bounds(9).String())
}

func TestRect(t *testing.T) {
	r := partition.Rect{X: 1, Y: 2, Width: 3, Height: 4}

	assert.Equal(t, 12, r.Area())
	assert.Equal(t, 4, r.Right())
	assert.Equal(t, 6, r.Bottom())
	assert.False(t, r.Empty())
	assert.True(t, partition.Rect{Width: 3}.Empty())
	assert.True(t, r.ContainsCell(3, 5))
	assert.False(t, r.ContainsCell(4, 5))
	assert.Equal(t, "{1,2 3x4}", fmt.Sprint(r))
}
