package framework

import (
	"fmt"
	"strings"
	"time"
)

// Results is the accumulated outcome of a suite run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Elapsed    time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of executed, failed, and skipped tests. The
// zero-length root context is not counted.
func (r Results) Counts() (executed, failed, skipped int) {
	for _, t := range r.Tests {
		if len(t.TestID.Path) == 0 {
			continue
		}
		if t.Skipped {
			skipped++
			continue
		}
		executed++
		if len(t.Errors) > 0 {
			failed++
		}
	}
	return
}

// TestID identifies a test as the path of names from the suite root down
// to the test itself.
type TestID struct {
	Path []string
}

func (t TestID) Child(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
