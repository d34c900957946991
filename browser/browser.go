// Package browser defines the driver contract that the page-object layer
// is written against, plus support types shared by the driver
// implementations in the chrome and static subpackages.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/formlab/login-acceptance-tests/framework"
)

// Driver creates browser sessions. Implementations must be safe to reuse
// across sequential test cases; each case gets its own Session.
type Driver interface {
	// Name is a short identifier such as "chrome" or "static".
	Name() string
	// Capabilities lists the optional features this driver supports.
	// Tests that need a capability the driver lacks are skipped.
	Capabilities() []string
	// NewSession opens a fresh browser session. The context bounds the
	// session's whole lifetime; individual actions are additionally
	// bounded by SessionOpts.ActionTimeout.
	NewSession(ctx context.Context, opts SessionOpts) (Session, error)
}

// Session is one live browser interaction. All methods are synchronous:
// each action completes (or fails) before the caller can issue the next,
// which is what gives test cases their strict sequential ordering.
type Session interface {
	// Navigate loads the page at the given path, resolved against the
	// session's base URL.
	Navigate(path string) error
	// Fill replaces the value of the form field matching the CSS selector.
	Fill(selector, value string) error
	// Click activates the element matching the CSS selector.
	Click(selector string) error
	// Text returns the rendered text content of the matching element.
	Text(selector string) (string, error)
	// Value returns the current value of the matching form field.
	Value(selector string) (string, error)
	// End terminates the session. It is safe to call more than once.
	End() error
}

// SessionOpts carries the per-session settings a driver needs. Viewport
// dimensions are optional; a driver that cannot apply them (such as the
// static driver) ignores them.
type SessionOpts struct {
	BaseURL        string
	Headless       bool
	ViewportWidth  ldvalue.OptionalInt
	ViewportHeight ldvalue.OptionalInt
	ActionTimeout  time.Duration
	DebugLogger    framework.Logger
}

// Logger returns the configured debug logger, or a null logger.
func (o SessionOpts) Logger() framework.Logger {
	if o.DebugLogger == nil {
		return framework.NullLogger()
	}
	return o.DebugLogger
}

// ErrSessionEnded is returned by session methods called after End.
var ErrSessionEnded = errors.New("browser session has already ended")

// ElementNotFoundError is returned when a selector matches nothing. It is
// always a hard action failure, never an assertion failure.
type ElementNotFoundError struct {
	Selector string
}

func (e ElementNotFoundError) Error() string {
	return fmt.Sprintf("no element matched selector %q", e.Selector)
}
