package haiku

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		input         string
		expectedCount int
	}{
		{"hello", 2},
		{"world", 1},
		{"haiku", 2},
		{"", 0},
		{"banana", 3},
		{"yesterday", 3},
		{"beautiful", 3},
		{"queue", 1},
		{"rhythm", 1},
		{"strength", 1},
		{"you're", 2},
		{"A.B.C.", 1},
		{"a.e.i", 3},
		{"x-ray", 1},
		{"2024", 0},
		{"Élan", 1},
		{"Ты", 1},
		{"улыбнулась.", 4},
		{"медленной", 3},
		{"ИЮНЬ", 1},
		{"ёж", 0},
		{"С", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expectedCount, CountSyllables(tt.input), tt.input)
	}
}

func TestCountSyllables_NoVowels(t *testing.T) {
	for _, word := range []string{"brr", "psst", "hmm", "TSK", "12345", "?!", "—", "вдль"} {
		assert.Equal(t, 0, CountSyllables(word), word)
	}
}

func TestCountSyllables_SeparatedVowels(t *testing.T) {
	for n := 1; n <= 10; n++ {
		assert.Equal(t, n, CountSyllables(strings.Repeat("ba", n)))
		assert.Equal(t, n, CountSyllables(strings.Repeat("то", n)))
		assert.Equal(t, n, CountSyllables("x"+strings.Repeat("E.", n)))
	}
}

func TestCountSyllables_RunCollapse(t *testing.T) {
	for _, r := range vowelRunes {
		single := string(r)
		assert.Equal(t, 1, CountSyllables(single), single)
		assert.Equal(t, CountSyllables(single), CountSyllables(single+single), single)
		assert.Equal(t, CountSyllables("t"+single+"k"), CountSyllables("t"+single+single+single+"k"), single)
	}
	assert.Equal(t, CountSyllables("a"), CountSyllables("aa"))
}

func TestLineSyllables(t *testing.T) {
	assert.Equal(t, 5, LineSyllables("An old silent pond"))
	assert.Equal(t, 7, LineSyllables("  A frog jumps\tinto the pond "))
	assert.Equal(t, 0, LineSyllables(""))
	assert.Equal(t, 0, LineSyllables("   "))
}
