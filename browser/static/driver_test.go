package static

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/login-acceptance-tests/browser"
	"github.com/formlab/login-acceptance-tests/webapp"
)

const (
	testAdminUser = "admin"
	testAdminPass = "hunter2"
)

func newTestSession(t *testing.T) browser.Session {
	t.Helper()
	server := httptest.NewServer(webapp.NewApp(testAdminUser, testAdminPass))
	t.Cleanup(server.Close)
	return newSessionForURL(t, server.URL)
}

func newSessionForURL(t *testing.T, url string) browser.Session {
	t.Helper()
	session, err := NewDriver().NewSession(context.Background(), browser.SessionOpts{
		BaseURL:       url,
		ActionTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.End() })
	return session
}

func requireText(t *testing.T, s browser.Session, selector string) string {
	t.Helper()
	text, err := s.Text(selector)
	require.NoError(t, err)
	return text
}

func requireValue(t *testing.T, s browser.Session, selector string) string {
	t.Helper()
	value, err := s.Value(selector)
	require.NoError(t, err)
	return value
}

func TestNavigateLoadsLoginPage(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	assert.Equal(t, "", requireText(t, s, "#notification"))
	assert.Equal(t, "", requireValue(t, s, "input[name=username]"))
	assert.Equal(t, "", requireValue(t, s, "input[name=password]"))
}

func TestServerRedirectIsFollowed(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/"))

	text, err := s.Text("h1")
	require.NoError(t, err)
	assert.Equal(t, "Sign in", text)
}

func TestFillSetsFieldValue(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	require.NoError(t, s.Fill("input[name=username]", "someone"))
	assert.Equal(t, "someone", requireValue(t, s, "input[name=username]"))
}

func TestResetButtonRestoresDefaultValues(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	require.NoError(t, s.Fill("input[name=username]", "someone"))
	require.NoError(t, s.Fill("input[name=password]", "secret"))
	require.NoError(t, s.Click("input[type=reset]"))

	assert.Equal(t, "", requireValue(t, s, "input[name=username]"))
	assert.Equal(t, "", requireValue(t, s, "input[name=password]"))
}

func TestResetRestoresServerSentValuesNotEmptyString(t *testing.T) {
	// After a failed login the server re-renders the form with the
	// submitted values baked in. Those become the new defaults, so a
	// reset goes back to them rather than to empty fields.
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	require.NoError(t, s.Fill("input[name=username]", "someone"))
	require.NoError(t, s.Fill("input[name=password]", "wrong"))
	require.NoError(t, s.Click("button[type=submit]"))

	require.NoError(t, s.Fill("input[name=username]", "changed"))
	require.NoError(t, s.Click("input[type=reset]"))
	assert.Equal(t, "someone", requireValue(t, s, "input[name=username]"))
}

func TestSubmitWithBadCredentialsShowsInvalidAndKeepsValues(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	require.NoError(t, s.Fill("input[name=username]", "test"))
	require.NoError(t, s.Fill("input[name=password]", "asdf"))
	require.NoError(t, s.Click("button[type=submit]"))

	assert.Contains(t, requireText(t, s, "#notification"), "Invalid")
	assert.Equal(t, "test", requireValue(t, s, "input[name=username]"))
	assert.Equal(t, "asdf", requireValue(t, s, "input[name=password]"))
}

func TestSubmitWithAdminCredentialsShowsSuccess(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	require.NoError(t, s.Fill("input[name=username]", testAdminUser))
	require.NoError(t, s.Fill("input[name=password]", testAdminPass))
	require.NoError(t, s.Click("button[type=submit]"))

	assert.Contains(t, requireText(t, s, "#notification"), "Success")
}

func TestMissingElementIsReportedAsSuchTyped(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	_, err := s.Text("#does-not-exist")
	var notFound browser.ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "#does-not-exist", notFound.Selector)
}

func TestClickOnInertElementFails(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))

	err := s.Click("h1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no effect without script support")
}

func TestActionsBeforeNavigationFail(t *testing.T) {
	s := newTestSession(t)
	err := s.Fill("input[name=username]", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no page loaded")
}

func TestActionsAfterEndFail(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Navigate("/login"))
	require.NoError(t, s.End())

	err := s.Navigate("/login")
	assert.True(t, errors.Is(err, browser.ErrSessionEnded))
}

func TestControlTypeDetectionIgnoresAttributeCase(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<form><input type="RESET"><button type="SUBMIT">Go</button><button>Go</button></form>`))
	require.NoError(t, err)

	assert.True(t, isResetControl(doc.Find("input").First()))
	assert.True(t, isSubmitControl(doc.Find("button").First()))
	// A button with no type attribute submits its form.
	assert.True(t, isSubmitControl(doc.Find("button").Last()))
}

func TestLoginJourneyIssuesRequestsInOrder(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(webapp.NewApp(testAdminUser, testAdminPass))
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s := newSessionForURL(t, server.URL)
	require.NoError(t, s.Navigate("/login"))
	require.NoError(t, s.Fill("input[name=username]", testAdminUser))
	require.NoError(t, s.Fill("input[name=password]", testAdminPass))
	require.NoError(t, s.Click("button[type=submit]"))

	firstRequest := <-requestsCh
	assert.Equal(t, "GET", firstRequest.Request.Method)
	secondRequest := <-requestsCh
	assert.Equal(t, "POST", secondRequest.Request.Method)

	select {
	case extra := <-requestsCh:
		t.Errorf("driver made an unexpected extra request: %s %s",
			extra.Request.Method, extra.Request.URL)
	default:
	}
}
