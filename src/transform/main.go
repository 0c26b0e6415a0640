package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kalexmills/haiku-transformer/src/haiku"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const sample = "one one on one one one on one one on"

const notHaiku = "The input cannot be transformed into a haiku"

func main() {
	flag.BoolP("stdin", "i", false, "read the text to transform from standard input")
	flag.StringP("logLevel", "L", "warning", "one of debug, info, warning, error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [words...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	viper.SetEnvPrefix("HAIKU")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}
	level, err := log.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	log.SetLevel(level)

	input, err := readInput(viper.GetBool("stdin"), flag.Args(), os.Stdin)
	if err != nil {
		log.Fatalf("could not read input: %v", err)
	}
	log.Debugf("transforming %q", input)

	fmt.Println(render(input))
}

// readInput picks the text to transform: standard input when asked, then any arguments, then the sample.
func readInput(fromStdin bool, args []string, stdin io.Reader) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return sample, nil
}

func render(input string) string {
	if transformed, ok := haiku.Transform(input); ok {
		return transformed
	}
	return notHaiku
}
