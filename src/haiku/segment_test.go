package haiku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		state  lineState
		total  int
		next   lineState
		closed bool
	}{
		{accumulatingFirst, 4, accumulatingFirst, false},
		{accumulatingFirst, 5, accumulatingSecond, true},
		{accumulatingFirst, 6, accumulatingFirst, false},
		{accumulatingSecond, 5, accumulatingSecond, false},
		{accumulatingSecond, 7, accumulatingThird, true},
		{accumulatingSecond, 8, accumulatingSecond, false},
		{accumulatingThird, 7, accumulatingThird, false},
		{accumulatingThird, 5, done, true},
		{done, 5, done, false},
	}

	for _, tt := range tests {
		next, closed := advance(tt.state, tt.total)
		assert.Equal(t, tt.next, next, "state %d, total %d", tt.state, tt.total)
		assert.Equal(t, tt.closed, closed, "state %d, total %d", tt.state, tt.total)
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		expected Segmentation
		ok       bool
	}{
		{"one word per line", []int{5, 7, 5}, Segmentation{1, 2, 3}, true},
		{"several words per line", []int{2, 2, 1, 2, 2, 2, 1, 2, 2, 1}, Segmentation{3, 7, 10}, true},
		{"zero syllable word opens the next line", []int{5, 0, 7, 5}, Segmentation{1, 3, 4}, true},
		{"trailing words are dropped", []int{5, 7, 5, 3, 0}, Segmentation{1, 2, 3}, true},
		{"empty", nil, Segmentation{}, false},
		{"third line missing", []int{5, 7}, Segmentation{}, false},
		{"third line short", []int{5, 7, 4}, Segmentation{}, false},
		{"first line overshoots", []int{4, 2, 6, 5}, Segmentation{}, false},
		{"second line overshoots", []int{5, 6, 2, 5}, Segmentation{}, false},
		{"third line overshoots", []int{5, 7, 4, 2}, Segmentation{}, false},
	}

	for _, tt := range tests {
		seg, ok := Segment(tt.counts)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.expected, seg, tt.name)
	}
}

func TestSegmentation_Bounds(t *testing.T) {
	seg := Segmentation{3, 7, 10}
	start, end := seg.Bounds(0)
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})
	start, end = seg.Bounds(1)
	assert.Equal(t, [2]int{3, 7}, [2]int{start, end})
	start, end = seg.Bounds(2)
	assert.Equal(t, [2]int{7, 10}, [2]int{start, end})
}
