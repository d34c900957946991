package chrome

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/login-acceptance-tests/browser"
	"github.com/formlab/login-acceptance-tests/webapp"
)

// The chrome driver needs a Chrome binary, so this test only runs when
// explicitly enabled. Everything else in the repository tests against the
// static driver instead.
func requireChrome(t *testing.T) {
	if os.Getenv("CHROME_E2E") == "" {
		t.Skip("set CHROME_E2E=1 to run tests against a real Chrome")
	}
}

func TestChromeSessionDrivesLoginJourney(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(webapp.NewApp("admin", "hunter2"))
	defer server.Close()

	session, err := NewDriver().NewSession(context.Background(), browser.SessionOpts{
		BaseURL:       server.URL,
		Headless:      true,
		ActionTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	defer session.End()

	require.NoError(t, session.Navigate("/login"))
	require.NoError(t, session.Fill("input[name=username]", "admin"))
	require.NoError(t, session.Fill("input[name=password]", "hunter2"))

	// The page script mirrors keystrokes into the display fields.
	mirrored, err := session.Text("#username-display")
	require.NoError(t, err)
	assert.Equal(t, "admin", mirrored)

	require.NoError(t, session.Click("button[type=submit]"))

	notification, err := session.Text("#notification")
	require.NoError(t, err)
	assert.Contains(t, notification, "Success")
}

func TestChromeDriverReportsJavascriptCapability(t *testing.T) {
	d := NewDriver()
	assert.Equal(t, "chrome", d.Name())
	assert.Contains(t, d.Capabilities(), CapabilityJavascript)
}
