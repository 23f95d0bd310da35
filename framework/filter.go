package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) || r.MustMatch.AnyMatchAncestorOf(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Patterns returns the source text of each pattern.
func (r RegexList) Patterns() []string {
	ret := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		ret = append(ret, p.String())
	}
	return ret
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchAncestorOf returns true if a pattern that is anchored at the start of the test path
// has a literal prefix that begins with name followed by "/". Without this, "-run ^create/round trip$"
// would filter out the parent "create" test and therefore never reach the subtest.
func (r RegexList) AnyMatchAncestorOf(name string) bool {
	for _, p := range r.patterns {
		src := p.String()
		if !strings.HasPrefix(src, "^") {
			continue
		}
		unanchored, err := regexp.Compile(strings.TrimPrefix(src, "^"))
		if err != nil {
			continue
		}
		literal, _ := unanchored.LiteralPrefix()
		if strings.HasPrefix(literal, name+"/") {
			return true
		}
	}
	return false
}

// PrintFilterDescription describes the effect of the filters, if any, on this test run.
func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
