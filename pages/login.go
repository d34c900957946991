// Package pages contains the page objects that test cases drive the
// application through. A page object maps a screen's elements and actions
// to a typed interface so tests never touch raw selectors.
//
// Scopes are explicit builder objects: the page root and each section are
// separate handles, and moving between them returns the next handle rather
// than mutating a shared cursor. Assertion failures are recorded on the
// test and the chain continues; action failures (element not found,
// navigation error, timeout) abort the test immediately.
package pages

import (
	"strings"

	"github.com/formlab/login-acceptance-tests/browser"
)

// TestingT is the failure-reporting surface a page object needs from the
// running test. Both *logintests.T and *testing.T satisfy it.
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

const loginPath = "/login"

// LoginPage is the root scope of the login screen.
type LoginPage struct {
	t        TestingT
	session  browser.Session
	elements map[string]string
}

// NewLoginPage builds the page object for a browser session. The session
// stays open until End is called.
func NewLoginPage(t TestingT, session browser.Session) *LoginPage {
	return &LoginPage{
		t:       t,
		session: session,
		elements: map[string]string{
			"@notification": "#notification",
		},
	}
}

// Navigate loads the login page.
func (p *LoginPage) Navigate() *LoginPage {
	if err := p.session.Navigate(loginPath); err != nil {
		p.fatal("navigate to login page: %s", err)
	}
	return p
}

// LoginForm scopes into the login-form section.
func (p *LoginPage) LoginForm() *LoginForm {
	return &LoginForm{
		page:     p,
		selector: "#login-form",
		elements: map[string]string{
			"@usernameInput": "input[name=username]",
			"@passwordInput": "input[name=password]",
			"@usernameTxt":   "#username-display",
			"@passwordTxt":   "#password-display",
			"@loginBtn":      "button[type=submit]",
			"@clearBtn":      "input[type=reset]",
		},
	}
}

// Assert enters the root scope's assertion chain.
func (p *LoginPage) Assert() PageAssertions {
	return PageAssertions{page: p}
}

// End terminates the browser interaction for this test case.
func (p *LoginPage) End() {
	if err := p.session.End(); err != nil {
		p.t.Errorf("ending browser session: %s", err)
	}
}

func (p *LoginPage) resolve(name string) string {
	if sel, ok := p.elements[name]; ok {
		return sel
	}
	return name
}

func (p *LoginPage) fatal(format string, args ...interface{}) {
	p.t.Errorf(format, args...)
	p.t.FailNow()
}

// PageAssertions is the root scope's assertion chain.
type PageAssertions struct {
	page *LoginPage
}

// ContainsText asserts that the element's displayed text contains the
// given substring. A mismatch is recorded but does not halt the chain.
func (a PageAssertions) ContainsText(name, substr string) PageAssertions {
	assertContainsText(a.page.t, a.page.session, a.page.resolve(name), name, substr)
	return a
}

// NotContainsText asserts that the element's displayed text does not
// contain the given substring.
func (a PageAssertions) NotContainsText(name, substr string) PageAssertions {
	t := a.page.t
	actual, err := a.page.session.Text(a.page.resolve(name))
	if err != nil {
		t.Errorf("reading text of %s: %s", name, err)
		t.FailNow()
	}
	if strings.Contains(actual, substr) {
		t.Errorf("expected text of %s not to contain %q, was %q", name, substr, actual)
	}
	return a
}

// OnPage returns to the root action scope.
func (a PageAssertions) OnPage() *LoginPage {
	return a.page
}

// LoginForm is the section scope for the login form region of the page.
type LoginForm struct {
	page     *LoginPage
	selector string
	elements map[string]string
}

// FillOut populates the username and password fields without submitting.
func (f *LoginForm) FillOut(username, password string) *LoginForm {
	f.fill("@usernameInput", username)
	f.fill("@passwordInput", password)
	return f
}

// Login populates the credential fields and submits the form.
func (f *LoginForm) Login(username, password string) *LoginForm {
	f.FillOut(username, password)
	return f.Click("@loginBtn")
}

// Click activates a control in this section.
func (f *LoginForm) Click(name string) *LoginForm {
	if err := f.page.session.Click(f.resolve(name)); err != nil {
		f.page.fatal("click %s: %s", name, err)
	}
	return f
}

// Assert enters this section's assertion chain.
func (f *LoginForm) Assert() FormAssertions {
	return FormAssertions{form: f}
}

// Parent returns to the enclosing page scope.
func (f *LoginForm) Parent() *LoginPage {
	return f.page
}

func (f *LoginForm) fill(name, value string) {
	if err := f.page.session.Fill(f.resolve(name), value); err != nil {
		f.page.fatal("fill %s: %s", name, err)
	}
}

// resolve maps an @alias to a CSS selector scoped under this section. An
// alias not known to the section falls back to the page root; anything not
// starting with @ is already a selector and is still scoped to the section.
func (f *LoginForm) resolve(name string) string {
	if strings.HasPrefix(name, "@") {
		if sel, ok := f.elements[name]; ok {
			return f.selector + " " + sel
		}
		return f.page.resolve(name)
	}
	return f.selector + " " + name
}

// FormAssertions is the section scope's assertion chain.
type FormAssertions struct {
	form *LoginForm
}

// ContainsText asserts that the element's displayed text contains the
// given substring.
func (a FormAssertions) ContainsText(name, substr string) FormAssertions {
	assertContainsText(a.form.page.t, a.form.page.session, a.form.resolve(name), name, substr)
	return a
}

// Value asserts that the form field's value is exactly the given string.
func (a FormAssertions) Value(name, want string) FormAssertions {
	t := a.form.page.t
	actual, err := a.form.page.session.Value(a.form.resolve(name))
	if err != nil {
		t.Errorf("reading value of %s: %s", name, err)
		t.FailNow()
	}
	if actual != want {
		t.Errorf("expected value of %s to be %q, was %q", name, want, actual)
	}
	return a
}

// Parent leaves the assertion chain and returns to the enclosing page scope.
func (a FormAssertions) Parent() *LoginPage {
	return a.form.page
}

func assertContainsText(t TestingT, session browser.Session, selector, name, substr string) {
	actual, err := session.Text(selector)
	if err != nil {
		t.Errorf("reading text of %s: %s", name, err)
		t.FailNow()
	}
	if !strings.Contains(actual, substr) {
		t.Errorf("expected text of %s to contain %q, was %q", name, substr, actual)
	}
}
