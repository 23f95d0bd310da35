// Package entitytests contains the entity API contract tests and the test scope they run in.
//
// Lower-level infrastructure that is not specific to entities, such as running subtests and
// collecting results, is in the framework package. The entity operations themselves are in the
// entity package.
package entitytests
