package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/xyzbank/entity-contract-tests/config"
	"github.com/xyzbank/entity-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL     string
	configFile     string
	timeout        time.Duration
	attachmentsDir string
	filters        framework.RegexFilters
	useTwin        bool
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the entity API (or set ENTITY_API_BASE_URL)")
	fs.StringVar(&c.configFile, "config", "", "optional YAML or JSON config file")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each request (default 10s)")
	fs.StringVar(&c.attachmentsDir, "attachments", "", "directory to save each test's HTTP responses in")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.useTwin, "twin", false, "run against an in-process copy of the entity API instead of -url")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.useTwin && c.serviceURL != "" {
		fmt.Fprintln(os.Stderr, "-url and -twin cannot be used together")
		fs.Usage()
		return false
	}
	return true
}

// configOverrides returns the settings that were given on the command line, which take
// precedence over the config file and the environment.
func (c *commandParams) configOverrides() map[string]interface{} {
	ret := make(map[string]interface{})
	if c.serviceURL != "" {
		ret[config.KeyBaseURL] = c.serviceURL
	}
	if c.timeout > 0 {
		ret[config.KeyTimeout] = c.timeout
	}
	if c.attachmentsDir != "" {
		ret[config.KeyAttachmentsDir] = c.attachmentsDir
	}
	return ret
}

// rerunCommand returns a command line that repeats this run, selecting only the given tests.
func (c *commandParams) rerunCommand(program string, ids []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if c.serviceURL != "" {
		b.add("-url", c.serviceURL)
	}
	if c.useTwin {
		b.add("-twin")
	}
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	if c.timeout > 0 {
		b.add("-timeout", c.timeout.String())
	}
	if c.attachmentsDir != "" {
		b.add("-attachments", c.attachmentsDir)
	}
	if c.debugAll {
		b.add("-debug-all")
	} else {
		b.add("-debug")
	}
	for _, id := range ids {
		b.add("-run", "^"+regexp.QuoteMeta(id.String())+"$")
	}
	return b.String()
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
