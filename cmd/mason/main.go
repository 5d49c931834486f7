// Command mason parses a MASON document and prints it as JSON or YAML.
//
// Usage:
//
//	mason [flags] [file]
//
// With no file, or with "-", the document is read from standard input.
// The log level is taken from the LOG_LEVEL environment variable.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/shapestone/shape-mason/pkg/mason"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const stdinName = "<stdin>"

func init() {
	// log level and format
	levelFlag := os.Getenv("LOG_LEVEL")
	if "" == levelFlag {
		levelFlag = "info"
	}
	level, err := log.ParseLevel(levelFlag)
	if nil != err {
		log.WithField("err", err).Warnf("invalid LOG_LEVEL %q, using info", levelFlag)
		level = log.InfoLevel
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// config holds the parsed command line.
type config struct {
	format   string
	tokens   bool
	check    bool
	maxDepth int
	file     string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("mason", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.format, "format", "f", "json", "output format: json or yaml")
	fs.BoolVarP(&cfg.tokens, "tokens", "t", false, "print the token stream instead of the parsed document")
	fs.BoolVarP(&cfg.check, "check", "c", false, "only check that the document is valid")
	fs.IntVar(&cfg.maxDepth, "max-depth", mason.DefaultMaxDepth, "maximum nesting depth of objects and arrays")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mason [flags] [file]\n\n")
		fmt.Fprintf(stderr, "Parses a MASON document from file, or standard input, and prints it.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch cfg.format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown format %q, expected json or yaml", cfg.format)
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	cfg.file = fs.Arg(0)

	return cfg, nil
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if nil != err {
		fmt.Fprintf(stderr, "mason: %v\n", err)
		return exitUsage
	}

	name, data, err := readInput(cfg.file, stdin)
	if nil != err {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitError
	}
	input := string(data)

	log.WithFields(log.Fields{
		"file":   name,
		"bytes":  len(data),
		"format": cfg.format,
	}).Debug("input read")

	switch {
	case cfg.tokens:
		err = printTokens(stdout, input)
	case cfg.check:
		err = mason.Validate(input, mason.WithMaxDepth(cfg.maxDepth))
	default:
		err = convert(stdout, input, cfg)
	}
	if nil != err {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitError
	}

	log.WithField("file", name).Debug("done")
	return exitOK
}

func readInput(file string, stdin io.Reader) (string, []byte, error) {
	if "" == file || "-" == file {
		data, err := io.ReadAll(stdin)
		if nil != err {
			return stdinName, nil, errors.Wrap(err, "error reading standard input")
		}
		return stdinName, data, nil
	}

	data, err := os.ReadFile(file)
	if nil != err {
		return file, nil, errors.Wrap(err, "error reading input file")
	}
	return file, data, nil
}

func convert(w io.Writer, input string, cfg *config) error {
	v, err := mason.Parse(input, mason.WithMaxDepth(cfg.maxDepth))
	if nil != err {
		return err
	}

	if "yaml" == cfg.format {
		return errors.Wrap(writeYAML(w, v), "error writing YAML")
	}
	return errors.Wrap(writeJSON(w, v), "error writing JSON")
}

// printTokens writes one line per token, skipping plain whitespace.
func printTokens(w io.Writer, input string) error {
	tokens, err := mason.Tokenize(input)
	for _, tok := range tokens {
		if mason.TokenWhitespace == tok.Kind {
			continue
		}
		if _, werr := fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Text); nil != werr {
			return errors.Wrap(werr, "error writing tokens")
		}
	}
	return err
}
