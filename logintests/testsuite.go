// Package logintests declares the acceptance-test suite for the login
// page. Each case is a flat, sequential script mirroring one literal user
// journey, driven through the page objects in the pages package.
package logintests

import (
	"github.com/formlab/login-acceptance-tests/browser/chrome"
	"github.com/formlab/login-acceptance-tests/framework"
)

// AllCapabilities lists every optional driver capability any test in this
// suite may gate on, so the console can report up front which tests a
// lesser driver will skip.
var AllCapabilities = []string{
	chrome.CapabilityJavascript,
	chrome.CapabilityScreenshots,
}

// RunTestSuite runs every declared test case against the harness and
// returns the accumulated results. Cases run sequentially, each with its
// own browser session and page object; no case depends on another's side
// effects.
func RunTestSuite(
	harness *Harness,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness)

		t.Run("Clear form test", DoClearFormTest)
		t.Run("Incorrect password test", DoIncorrectPasswordTest)
		t.Run("Login test", DoLoginTest)
		t.Run("properties", DoPropertyTests)
	})
}
