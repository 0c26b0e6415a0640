package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kalexmills/haiku-transformer/src/haiku"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// Datasource describes how to pull message text out of one line of a corpus file.
type Datasource struct {
	filename   string
	lineParser func(string) string
}

var Unescaper = strings.NewReplacer("\\/", "/", "\\\"", "\"", "''''", "'", "''", "'")

var sources = map[string]Datasource{
	"wikipedia": {
		filename: "data/wikipedia.talkpages.conversations.txt",
		lineParser: func(s string) string {
			tokens := strings.Split(s, "+++$+++")
			if len(tokens) < 8 {
				return ""
			}
			cleaned := strings.TrimSpace(tokens[7]) // 7th index is the 'cleaned' content
			return Unescaper.Replace(cleaned)
		},
	},
	"gen-chat": {
		filename: "data/gen-chat.csv.txt",
		lineParser: func(s string) string {
			tokens := strings.Split(s, ",")
			if len(tokens) < 4 {
				return ""
			}
			return strings.Trim(tokens[3], " \"")
		},
	},
}

var source = flag.StringP("source", "s", "gen-chat", "corpus to read, one of wikipedia or gen-chat")

func main() {
	flag.Parse()
	ds, ok := sources[*source]
	if !ok {
		log.Fatalf("unknown source %s", *source)
	}

	f, err := os.Open(ds.filename)
	FatalError(err)
	defer f.Close()

	for _, r := range census(f, ds.lineParser) {
		fmt.Println(r.word, r.count)
	}
}

type result struct {
	word  string
	count int
}

// census returns the words which have no syllables by the vowel-run count, most frequent first.
// Words seen only once are left out.
func census(r io.Reader, lineParser func(string) string) []result {
	counts := make(map[string]int)
	s := bufio.NewScanner(r)
	for s.Scan() {
		str := strings.TrimSpace(s.Text())
		if str == "" {
			continue
		}
		for _, t := range strings.Fields(lineParser(str)) {
			cleaned := clean(t)
			if cleaned == "" || haiku.CountSyllables(cleaned) > 0 {
				continue
			}
			counts[cleaned]++
		}
	}
	if err := s.Err(); err != nil {
		log.Println("stopped reading corpus early,", err)
	}

	var results []result
	for word, count := range counts {
		if count == 1 {
			continue // we don't care about one-offs.
		}
		results = append(results, result{word, count})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].count != results[j].count {
			return results[i].count > results[j].count
		}
		return results[i].word < results[j].word
	})
	return results
}

// clean drops links and markup, and trims punctuation from both ends of a token.
func clean(s string) string {
	if strings.HasPrefix(s, "[") ||
		strings.HasPrefix(s, "<") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") {
		return ""
	}
	return strings.Trim(strings.ToLower(s), ".,;:!?\"'()*-")
}

func FatalError(err error) {
	if err != nil {
		log.Fatalf("encountered error: %v", err)
	}
}
