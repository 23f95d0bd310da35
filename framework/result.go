package framework

import (
	"errors"
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, and were skipped by the test itself.
// Tests excluded by a filter are not counted at all.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

// FailedLeafIDs returns the IDs of failed tests that have no failed subtests, which is the most
// precise selection for re-running only what failed.
func (r Results) FailedLeafIDs() []TestID {
	var ret []TestID
	for i, f := range r.Failures {
		isParent := false
		for j, g := range r.Failures {
			if i != j && g.TestID.HasPrefix(f.TestID) {
				isParent = true
				break
			}
		}
		if !isParent {
			ret = append(ret, f.TestID)
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// HasPrefix returns true if t is a strict descendant of parent.
func (t TestID) HasPrefix(parent TestID) bool {
	if len(t.Path) <= len(parent.Path) {
		return false
	}
	for i, p := range parent.Path {
		if t.Path[i] != p {
			return false
		}
	}
	return true
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// reformatError strips the leading blank line and tab indentation that testify puts in front of
// its multi-line failure messages.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, "\t")
	}
	return errors.New(strings.Join(lines, "\n"))
}
