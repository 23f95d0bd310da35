// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. The test harness talks to a remote service under test over HTTP. Before any test runs,
// NewTestHarness verifies that the service is reachable.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier, to accumulate
// success/failure results, to register cleanup actions that run on every exit path, and to
// attach named artifacts such as HTTP responses.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
