package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/formlab/login-acceptance-tests/framework"
)

type commandParams struct {
	appURL     string
	configPath string
	driverName string
	headful    bool
	port       int
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.appURL, "url", "", "base URL of the application under test (empty: start the embedded login app)")
	fs.StringVar(&c.configPath, "config", "", "path to the YAML configuration file")
	fs.StringVar(&c.driverName, "driver", "", `browser driver to use ("chrome" or "static"; overrides config)`)
	fs.BoolVar(&c.headful, "headful", false, "run the browser with a visible window")
	fs.IntVar(&c.port, "port", 0, "listen port for the embedded app (0: pick a free port)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a shell command that would repeat just the failed
// tests from this run, so a developer can iterate on them without
// re-running the whole suite.
func rerunCommand(params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0])
	if params.appURL != "" {
		b.add("-url", params.appURL)
	}
	if params.configPath != "" {
		b.add("-config", params.configPath)
	}
	if params.driverName != "" {
		b.add("-driver", params.driverName)
	}
	if params.headful {
		b.add("-headful")
	}
	b.add("-debug")
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}
