package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results     Results
	testLogger  TestLogger
	filter      Filter
	attachments AttachmentWriter
}

// Context is the framework's equivalent of *testing.T for one test or subtest. It implements
// the TestingT interface of the testify assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	attachments []Attachment
	deferred    []func()
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// RunOptions contains optional parameters for Run.
type RunOptions struct {
	Filter      Filter
	TestLogger  TestLogger
	Attachments AttachmentWriter
}

// Run executes a top-level action and returns the accumulated results of it and all of its
// subtests.
func Run(opts RunOptions, action func(*Context)) Results {
	testLogger := opts.TestLogger
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:      opts.Filter,
		testLogger:  testLogger,
		attachments: opts.Attachments,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		c.runDeferred()
		if c.env.attachments != nil && len(c.attachments) > 0 {
			if err := c.env.attachments.Write(c.id, c.attachments); err != nil {
				c.env.testLogger.TestWarning(c.id, fmt.Sprintf("could not save attachments: %s", err))
			}
		}
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// runDeferred calls deferred functions in reverse order. A panic in one of them is reported as
// a warning so that it cannot hide the outcome of the test body.
func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		fn := c.deferred[len(c.deferred)-1]
		c.deferred = c.deferred[:len(c.deferred)-1]
		func() {
			defer func() {
				if r := recover(); r != nil {
					if _, ok := r.(*Context); ok {
						return
					}
					c.Warnf("panic in deferred cleanup: %+v", r)
				}
			}()
			fn()
		}()
	}
}

// ID returns the identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow stops the test immediately. Deferred functions still run.
func (c *Context) FailNow() {
	panic(c)
}

// Failed returns true if the test has recorded a failure so far.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test exits, whether it passed, failed or panicked.
// Functions run in the reverse order in which they were added.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// Warnf reports a problem that does not affect the test outcome, such as a failed cleanup.
func (c *Context) Warnf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.debugLogger.Printf("WARNING: %s", message)
	c.env.testLogger.TestWarning(c.id, message)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// Attach stores a named artifact for this test. Text attachments are also copied to the debug
// log so that they appear in the console output of a failed test.
func (c *Context) Attach(name, contentType string, data []byte) {
	c.attachments = append(c.attachments, Attachment{
		Name:        name,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	})
	if isTextContentType(contentType) {
		c.debugLogger.Printf("[%s] %s", name, string(data))
	}
}

// Attachments returns the artifacts attached so far.
func (c *Context) Attachments() []Attachment {
	return append([]Attachment(nil), c.attachments...)
}
