package haiku

import (
	"fmt"
	"regexp"
	"strings"
)

// Transform reports whether the words of input can be broken into lines of 5, 7 and 5 syllables
// and, if so, returns the formatted haiku. Words are separated by whitespace; anything left over
// once the third line is complete is dropped.
func Transform(input string) (string, bool) {
	words := strings.Fields(input)
	counts := make([]int, len(words))
	for i, word := range words {
		counts[i] = CountSyllables(word)
	}
	seg, ok := Segment(counts)
	if !ok {
		return "", false
	}
	return Format(words, seg), true
}

// Format renders the lines of seg. Every word is followed by a single space and every line by a
// newline, so each line ends with " \n".
func Format(words []string, seg Segmentation) string {
	var b strings.Builder
	for i := range seg {
		start, end := seg.Bounds(i)
		for _, word := range words[start:end] {
			b.WriteString(word)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// IsHaiku checks text that is already written on three lines. It returns nil when the lines have
// 5, 7 and 5 syllables, or an error describing the first problem found.
func IsHaiku(text string) error {
	cleaned := cleanEmoji(strings.Trim(text, " \n\t"))
	lines := strings.Split(cleaned, "\n")
	if len(lines) != len(lineTargets) {
		return fmt.Errorf("a haiku has %d lines, but this has %d", len(lineTargets), len(lines))
	}
	for i, line := range lines {
		count := LineSyllables(line)
		if count != lineTargets[i] {
			return fmt.Errorf("line %d has %d syllables, expected %d", i+1, count, lineTargets[i])
		}
	}
	return nil
}

var emojiRegex = regexp.MustCompile(`:[^:\s]+:`)

func cleanEmoji(s string) string {
	return strings.TrimSpace(emojiRegex.ReplaceAllString(s, ""))
}
