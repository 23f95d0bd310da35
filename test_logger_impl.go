package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyzbank/entity-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	failedText  = color.New(color.FgRed, color.Bold).SprintFunc()
	passedText  = color.New(color.FgGreen).SprintFunc()
	skippedText = color.New(color.FgYellow).SprintFunc()
	warningText = color.New(color.FgYellow).SprintFunc()
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	Output               io.Writer
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestWarning(id framework.TestID, message string) {
	fmt.Fprintf(c.out(), "  %s %s\n", warningText("WARNING:"), message)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  %s %s\n", failedText("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  %s %s\n", skippedText("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.out(), "  %s %s (%s)\n", skippedText("SKIPPED:"), id, reason)
	}
}

// PrintResults writes a summary of the test run.
func PrintResults(out io.Writer, results framework.Results) {
	passed, failed, skipped := results.Counts()
	if results.OK() {
		fmt.Fprintf(out, "%s (%d passed, %d skipped)\n", passedText("All tests passed"), passed, skipped)
		return
	}
	fmt.Fprintf(out, "%s (%d passed, %d failed, %d skipped)\n", failedText("FAILED"), passed, failed, skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
	}
}
