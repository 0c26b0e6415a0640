package haiku

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			"lands on every line",
			"one one on one one one on one one on",
			"one one on \none one one on \none one on \n",
			true,
		},
		{
			// the heuristic sees 1+2+2, then 2+1+4, then 2+1+2
			"english sentence",
			"A Friday Haiku Time to celebrate freedom to create my art.",
			"A Friday Haiku \nTime to celebrate \nfreedom to create \n",
			true,
		},
		{
			"too few syllables",
			"one one on one one one on one",
			"",
			false,
		},
		{
			"third line runs short",
			"Ты улыбнулась. С медленной льдины вдали Птица взлетает.",
			"",
			false,
		},
		{
			"whitespace collapses",
			"  ba\tba\n\nba  ba ba " + strings.Repeat("ba ", 12),
			"ba ba ba ba ba \nba ba ba ba ba ba ba \nba ba ba ba ba \n",
			true,
		},
		{
			"words after the third line are dropped",
			strings.Repeat("ba ", 17) + "extra words here",
			"ba ba ba ba ba \nba ba ba ba ba ba ba \nba ba ba ba ba \n",
			true,
		},
		{
			"vowelless word starts the next line",
			strings.Repeat("ba ", 5) + "brr " + strings.Repeat("ba ", 12) + "brr",
			"ba ba ba ba ba \nbrr ba ba ba ba ba ba ba \nba ba ba ba ba \n",
			true,
		},
		{"empty", "", "", false},
		{"only whitespace", " \n\t ", "", false},
	}

	for _, tt := range tests {
		actual, ok := Transform(tt.input)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.expected, actual, tt.name)
	}
}

func TestTransform_Overshoot(t *testing.T) {
	overshoots := []string{
		// first line jumps from 4 to 6
		"ba ba ba ba baba " + strings.Repeat("ba ", 11),
		// second line jumps from 6 to 8
		strings.Repeat("ba ", 11) + "baba " + strings.Repeat("ba ", 4),
		// third line jumps from 4 to 7
		strings.Repeat("ba ", 12) + "ba ba ba ba bababa",
		// third line jumps from 4 to 6
		"An old silent pond A frog jumps into the pond splash! Silence again.",
	}
	for _, input := range overshoots {
		actual, ok := Transform(input)
		assert.False(t, ok, input)
		assert.Empty(t, actual, input)
	}
}

func TestTransform_LineShape(t *testing.T) {
	actual, ok := Transform("one one on one one one on one one on")
	assert.True(t, ok)
	lines := strings.SplitAfter(actual, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "", lines[3])
	for _, line := range lines[:3] {
		assert.True(t, strings.HasSuffix(line, " \n"), line)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	for _, input := range []string{
		"one one on one one one on one one on",
		"one one on one one one on one",
	} {
		first, firstOK := Transform(input)
		second, secondOK := Transform(input)
		assert.Equal(t, firstOK, secondOK, input)
		assert.Equal(t, first, second, input)
	}
}

func TestFormat(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, "a \nb c \nd \n", Format(words, Segmentation{1, 3, 4}))
}

func TestIsHaiku(t *testing.T) {
	haikus := []string{
		"An old silent pond\nA frog jumps into the pond\nsplash! Silence pond",
		"ba ba ba ba ba\nba ba ba ba ba ba ba\nba ba ba ba ba",
		"\n\nba ba ba ba ba \nba ba ba ba ba ba ba\nba ba ba ba ba\n \t",
		"ba ba ba ba ba\nba ba ba ba ba ba ba\nba ba ba ba ba :wink:",
	}
	for _, h := range haikus {
		assert.NoError(t, IsHaiku(h), h)
	}

	notHaikus := []struct {
		input string
		err   string
	}{
		{"An old silent pond\nA frog jumps into the pond\nsplash! Silence again.", "line 3 has 6 syllables, expected 5"},
		{"Over the wintry\nforest, winds howl in rage with\nno leaves to blow.", "line 2 has 8 syllables, expected 7"},
		{"it's not a haiku", "a haiku has 3 lines, but this has 1"},
		{"this\nis\nnot\nhaiku", "a haiku has 3 lines, but this has 4"},
	}
	for _, tt := range notHaikus {
		assert.EqualError(t, IsHaiku(tt.input), tt.err, tt.input)
	}
}
