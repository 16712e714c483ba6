/*
ll1gen is a console utility building LL(1) prediction table for grammar and lexer configuration.
Usage is

	ll1gen [-j] [-o <name>] [-i <name>] [-log <level>] <file>

-j flag instructs ll1gen to output prediction table as JSON instead of text;

-o <name> defines output file name, default is standard output;

-i <name> defines input file to scan and parse, tokens and syntax errors are written instead of the table;

-log <level> defines log level (debug, info, warn, error), default is warn;

<file> defines YAML or JSON configuration file containing token types, keywords, and grammar description
parsable by langdef.Parse().

Exit status is 2 for usage errors, 3 for configuration or grammar errors, 4 if input is rejected.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ava12/ll1/parser"
	"github.com/ava12/ll1/source"
)

const (
	exitOk = iota
	_
	exitUsage
	exitConfig
	exitRejected
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		generateJson                        bool
		outFileName, inputFileName, logName string
	)

	flags := flag.NewFlagSet("ll1gen", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage is  ll1gen [-j] [-o <name>] [-i <name>] [-log <level>] <file>")
		flags.PrintDefaults()
		fmt.Fprintln(flags.Output(), "  <file>")
		fmt.Fprintln(flags.Output(), "\tYAML or JSON configuration file name")
	}

	flags.BoolVar(&generateJson, "j", false, "output JSON table instead of text")
	flags.StringVar(&outFileName, "o", "", "output file name, default is standard output")
	flags.StringVar(&inputFileName, "i", "", "input file to scan and parse")
	flags.StringVar(&logName, "log", "warn", "log level")
	if flags.Parse(args) != nil {
		return exitUsage
	}

	confFileName := flags.Arg(0)
	var level slog.Level
	if confFileName == "" || flags.NArg() > 1 || level.UnmarshalText([]byte(logName)) != nil {
		flags.Usage()
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	tc, e := loadToolchain(confFileName, logger)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitConfig
	}

	var buffer bytes.Buffer
	status := exitOk
	switch {
	case inputFileName != "":
		status, e = tc.parseFile(&buffer, inputFileName)
	case generateJson:
		var content []byte
		content, e = makeJson(tc.parser.Table())
		buffer.Write(content)
		buffer.WriteByte('\n')
	default:
		e = renderSets(&buffer, tc.parser)
		if e == nil {
			buffer.WriteByte('\n')
			e = renderTable(&buffer, tc.parser.Table())
		}
	}

	if e == nil {
		if outFileName == "" {
			_, e = stdout.Write(buffer.Bytes())
		} else {
			e = os.WriteFile(outFileName, buffer.Bytes(), 0o666)
		}
	}
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitConfig
	}

	return status
}

func loadToolchain(name string, logger *slog.Logger) (*toolchain, error) {
	c, e := loadConfig(name)
	if e != nil {
		return nil, e
	}

	return c.build(name, logger)
}

func (tc *toolchain) parseFile(w io.Writer, name string) (int, error) {
	content, e := os.ReadFile(name)
	if e != nil {
		return exitConfig, e
	}

	tokens, lexErrors := tc.lexer.Scan(source.New(name, content))
	r := tc.parser.Parse(parser.FromLexer(tokens))
	renderParse(w, tokens, lexErrors, r)
	if !r.Success || len(lexErrors) > 0 {
		return exitRejected, nil
	}

	return exitOk, nil
}
