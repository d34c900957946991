// Package framework contains the low-level test harness infrastructure that
// is not specific to browser testing.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a hierarchical test
// identifier and to accumulate success/failure results outside of the Go
// test runner.
//
// 2. Regex-based filters decide which tests in a suite actually execute for
// a given run; everything else is reported as skipped.
//
// 3. Each test can capture timestamped debug output, which is delivered to
// a TestLogger together with the test's outcome.
//
// The domain-specific code that knows what is being tested (the browser
// drivers, the page objects, and the login test suite) is layered on top of
// this package.
package framework
