package main

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

const dict = `;;; # CMUdict  --  Major Version: 0.07
HAIKU  HH AY1 K UW0
HELLO  HH AH0 L OW1
HELLO(1)  HH EH0 L OW1
RHYTHM  R IH1 DH AH0 M
CAKE  K EY1 K
`

func TestParseFile(t *testing.T) {
	entries := parseFile([]byte(dict))
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].word < entries[j].word
	})
	assert.Equal(t, []Entry{
		{"CAKE", []int{1}},
		{"HAIKU", []int{2}},
		{"HELLO", []int{2}},
		{"RHYTHM", []int{2}},
	}, entries)
}

func TestParseLine(t *testing.T) {
	word, count, ok := parseLine([]byte("HELLO(1)  HH EH0 L OW1"))
	assert.True(t, ok)
	assert.Equal(t, "HELLO", word)
	assert.Equal(t, 2, count)

	_, _, ok = parseLine([]byte(";;; comment"))
	assert.False(t, ok)
	_, _, ok = parseLine([]byte(""))
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	r := compare(parseFile([]byte(dict)))
	assert.Equal(t, 4, r.total)
	assert.Equal(t, 2, r.matched) // CAKE reads as two runs, RHYTHM as one
	assert.InDelta(t, 50.0, r.percent(), 0.001)
	assert.Len(t, r.mismatches, 2)
	assert.Equal(t, 0.0, report{}.percent())
}
