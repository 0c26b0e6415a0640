package haiku

import "strings"

// vowelRunes lists every rune treated as a syllable nucleus. Both cases are spelled out; nothing is
// case folded.
const vowelRunes = "aeiouyAEIOUY" + "уеыаэояию" + "УЕЫАОЭЯИЮ"

var vowels map[rune]struct{}

func init() {
	vowels = make(map[rune]struct{}, len(vowelRunes))
	for _, r := range vowelRunes {
		vowels[r] = struct{}{}
	}
}

func isVowel(r rune) bool {
	_, ok := vowels[r]
	return ok
}

// CountSyllables estimates the number of syllables in word by counting runs of consecutive vowels.
// Anything outside the vowel set, including digits and punctuation, ends the current run.
func CountSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel { // start of a new run
			count++
		}
		prevVowel = vowel
	}
	return count
}

// LineSyllables sums the syllable counts of every whitespace-separated word in line.
func LineSyllables(line string) int {
	count := 0
	for _, word := range strings.Fields(line) {
		count += CountSyllables(word)
	}
	return count
}
