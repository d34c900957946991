package logintests

import (
	"context"
	"fmt"

	"github.com/formlab/login-acceptance-tests/browser"
	"github.com/formlab/login-acceptance-tests/config"
	"github.com/formlab/login-acceptance-tests/framework"
	"github.com/formlab/login-acceptance-tests/pages"
)

// Harness ties together everything a suite run needs: the immutable
// configuration, the browser driver, and the URL of the application under
// test (external, or the embedded app started by main).
type Harness struct {
	Config config.Config
	Driver browser.Driver
	AppURL string
}

func (h *Harness) HasCapability(desired string) bool {
	for _, c := range h.Driver.Capabilities() {
		if c == desired {
			return true
		}
	}
	return false
}

// T represents a test or subtest in the login test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features
// such as debug logging that are provided by the lower-level framework
// package. To make test assertions you can use the assert and require
// packages, passing the *T as if it were a *testing.T.
//
// Every browser session a test opens through OpenLoginPage is closed
// automatically when the test's scope ends, so one test's session can
// never leak into the next.
type T struct {
	context  *framework.Context
	harness  *Harness
	sessions []browser.Session
}

func newTestScope(context *framework.Context, harness *Harness) *T {
	return &T{
		context: context,
		harness: harness,
	}
}

func (t *T) close() {
	for i := len(t.sessions) - 1; i >= 0; i-- {
		_ = t.sessions[i].End()
	}
	t.sessions = nil
}

// Errorf is called by assertions to log a test failure. It does not cause
// an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
// The subtest receives a new T with no open sessions.
func (t *T) Run(name string, action func(*T)) {
	var t1 *T
	t.context.Run(name, func(c *framework.Context) {
		t1 = newTestScope(c, t.harness)
		action(t1)
	})
	if t1 != nil {
		t1.close()
	}
}

// Debug logs some debug output for the test. The output will be passed to
// the test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Globals returns the read-only configuration bag for the suite run. Tests
// must not mutate it; it is passed by value to enforce that.
func (t *T) Globals() config.Globals {
	return t.harness.Config.Globals
}

// RequireCapability skips this test if the browser driver does not support
// the specified capability.
func (t *T) RequireCapability(capability string) {
	if !t.harness.HasCapability(capability) {
		t.context.SkipWithReason(fmt.Sprintf("browser driver does not have capability %q", capability))
	}
}

// OpenLoginPage starts a fresh browser session and returns the login page
// object for it. The page has not been navigated yet. The session is ended
// automatically when this test's scope ends, though tests normally end it
// themselves with the page object's End.
func (t *T) OpenLoginPage() *pages.LoginPage {
	cfg := t.harness.Config.Browser
	opts := browser.SessionOpts{
		BaseURL:        t.harness.AppURL,
		Headless:       cfg.Headless,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		ActionTimeout:  cfg.ActionTimeout,
		DebugLogger:    t.context.DebugLogger(),
	}
	session, err := t.harness.Driver.NewSession(context.Background(), opts)
	if err != nil {
		t.Errorf("cannot start browser session: %s", err)
		t.FailNow()
	}
	t.sessions = append(t.sessions, session)
	t.Debug("started %s browser session for %s", t.harness.Driver.Name(), t.context.ID())
	return pages.NewLoginPage(t, session)
}
