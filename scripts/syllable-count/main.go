package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/kalexmills/haiku-transformer/src/haiku"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	filename = flag.StringP("dict", "f", "data/cmudict-0.7b.txt", "CMU pronouncing dictionary")
	verbose  = flag.BoolP("verbose", "v", false, "print every word the vowel-run count gets wrong")
)

func main() {
	flag.Parse()

	f, err := os.ReadFile(*filename)
	if err != nil {
		log.Fatalf("encountered error: %v", err)
	}
	entries := parseFile(f)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].word < entries[j].word
	})

	r := compare(entries)
	if *verbose {
		for _, entry := range r.mismatches {
			fmt.Printf("%s %v %d\n", entry.word, entry.syllableCounts, haiku.CountSyllables(entry.word))
		}
	}
	fmt.Printf("%d of %d words counted correctly (%.1f%%)\n", r.matched, r.total, r.percent())
}

type report struct {
	total      int
	matched    int
	mismatches []Entry
}

func (r report) percent() float64 {
	if r.total == 0 {
		return 0
	}
	return 100 * float64(r.matched) / float64(r.total)
}

// compare counts the entries for which the vowel-run count agrees with any dictionary pronunciation.
func compare(entries []Entry) report {
	var r report
	for _, entry := range entries {
		r.total++
		count := haiku.CountSyllables(entry.word)
		if entry.has(count) {
			r.matched++
		} else {
			r.mismatches = append(r.mismatches, entry)
		}
	}
	return r
}

func parseFile(file []byte) []Entry {
	countsByWord := make(map[string][]int)

	lines := bytes.Split(file, []byte("\n")) // not the fastest.
	for _, line := range lines {
		word, count, ok := parseLine(bytes.TrimRight(line, "\r"))
		if ok {
			countsByWord[word] = append(countsByWord[word], count)
		}
	}

	// deduplicate counts (for multiple pronounciations)
	var result []Entry
	for word, counts := range countsByWord {
		seen := make(map[int]struct{})
		var unique []int
		for _, count := range counts {
			if _, ok := seen[count]; ok {
				continue
			}
			seen[count] = struct{}{}
			unique = append(unique, count)
		}
		result = append(result, Entry{word, unique})
	}
	return result
}

func parseLine(line []byte) (string, int, bool) {
	if bytes.HasPrefix(line, []byte(";;;")) { // comment
		return "", 0, false
	}
	tokens := bytes.Split(line, []byte("  "))
	if len(tokens) != 2 || len(tokens[0]) == 0 {
		return "", 0, false
	}
	word := string(tokens[0])
	if len(word) > 3 && word[len(word)-1] == ')' { // remove extra pronounciation count
		word = word[:len(word)-3]
	}
	return word, countPhonemeSyllables(tokens[1]), true
}

func countPhonemeSyllables(pronunciation []byte) int {
	phonemes := bytes.Split(pronunciation, []byte(" "))
	vowelCount := 0
	for _, phoneme := range phonemes {
		if len(phoneme) < 2 {
			continue
		}
		if _, ok := Vowels[string(phoneme[:2])]; ok {
			vowelCount++
		}
	}
	return vowelCount
}

var Vowels map[string]struct{}

func init() {
	Vowels = make(map[string]struct{})
	vowels := []string{"AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY", "IH", "IY", "OW", "OY", "UH", "UW"}
	for _, vowel := range vowels {
		Vowels[vowel] = struct{}{}
	}
}

type Entry struct {
	word           string
	syllableCounts []int
}

func (e Entry) has(count int) bool {
	for _, c := range e.syllableCounts {
		if c == count {
			return true
		}
	}
	return false
}
