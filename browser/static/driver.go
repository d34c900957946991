// Package static implements a simulated browser that speaks plain HTTP and
// evaluates CSS selectors against the fetched document. It implements
// standard HTML form behavior: filling fields, reset buttons restoring
// default values, and submit buttons serializing and submitting the owning
// form. It executes no script, so it advertises no optional capabilities.
//
// The static driver exists so the suite (and this repository's own tests)
// can run hermetically, with no real browser installed.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/formlab/login-acceptance-tests/browser"
)

type Driver struct {
	// HTTPClient overrides the client used for page requests. Mainly for
	// tests; when nil a client with a fresh cookie jar is built per session.
	HTTPClient *http.Client
}

func NewDriver() *Driver { return &Driver{} }

func (d *Driver) Name() string { return "static" }

func (d *Driver) Capabilities() []string { return nil }

func (d *Driver) NewSession(ctx context.Context, opts browser.SessionOpts) (browser.Session, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	client := d.HTTPClient
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client = &http.Client{Jar: jar}
	}
	s := &session{
		ctx:     ctx,
		opts:    opts,
		client:  client,
		baseURL: base,
		journal: browser.NewEventJournal(64),
	}
	return s, nil
}

type session struct {
	ctx     context.Context
	opts    browser.SessionOpts
	client  *http.Client
	baseURL *url.URL
	journal *browser.EventJournal
	seq     int

	// doc is the currently loaded document; currentURL is where it came
	// from, after any redirects, for resolving relative form actions.
	doc        *goquery.Document
	currentURL *url.URL
	ended      bool
}

func (s *session) Navigate(path string) error {
	if s.ended {
		return browser.ErrSessionEnded
	}
	target, err := s.baseURL.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	return s.request(http.MethodGet, target, nil)
}

func (s *session) Fill(selector, value string) error {
	sel, err := s.find(selector)
	if err != nil {
		return err
	}
	switch goquery.NodeName(sel) {
	case "input":
		sel.SetAttr("value", value)
	case "textarea":
		sel.SetText(value)
	default:
		return fmt.Errorf("element %q is not a fillable form field", selector)
	}
	s.record("fill %s", selector)
	return nil
}

func (s *session) Click(selector string) error {
	sel, err := s.find(selector)
	if err != nil {
		return err
	}
	s.record("click %s", selector)

	switch {
	case isResetControl(sel):
		return s.resetForm(sel, selector)
	case isSubmitControl(sel):
		return s.submitForm(sel, selector)
	case goquery.NodeName(sel) == "a":
		href, ok := sel.Attr("href")
		if !ok {
			return fmt.Errorf("anchor %q has no href", selector)
		}
		target, err := s.currentURL.Parse(href)
		if err != nil {
			return fmt.Errorf("anchor %q has invalid href %q: %w", selector, href, err)
		}
		return s.request(http.MethodGet, target, nil)
	default:
		return fmt.Errorf("clicking %q has no effect without script support", selector)
	}
}

func (s *session) Text(selector string) (string, error) {
	sel, err := s.find(selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

func (s *session) Value(selector string) (string, error) {
	sel, err := s.find(selector)
	if err != nil {
		return "", err
	}
	switch goquery.NodeName(sel) {
	case "input":
		return sel.AttrOr("value", ""), nil
	case "textarea":
		return sel.Text(), nil
	default:
		return "", fmt.Errorf("element %q is not a form field", selector)
	}
}

func (s *session) End() error {
	if s.ended {
		return nil
	}
	s.ended = true
	s.journal.Drain(s.opts.Logger().Printf)
	s.journal.Close()
	return nil
}

func (s *session) find(selector string) (*goquery.Selection, error) {
	if s.ended {
		return nil, browser.ErrSessionEnded
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded; call Navigate first")
	}
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, browser.ElementNotFoundError{Selector: selector}
	}
	return sel, nil
}

// resetForm restores every field in the clicked control's form to its
// default value, which for this driver means the value baked into the HTML
// the server sent.
func (s *session) resetForm(sel *goquery.Selection, selector string) error {
	form := sel.Closest("form")
	if form.Length() == 0 {
		return fmt.Errorf("reset control %q is not inside a form", selector)
	}
	form.Find("input").Each(func(_ int, field *goquery.Selection) {
		switch fieldType(field) {
		case "submit", "reset", "button":
		default:
			field.SetAttr("value", field.AttrOr("data-default", ""))
		}
	})
	form.Find("textarea").Each(func(_ int, field *goquery.Selection) {
		field.SetText(field.AttrOr("data-default", ""))
	})
	return nil
}

// submitForm serializes the owning form and performs the submission,
// following the form's method and action.
func (s *session) submitForm(sel *goquery.Selection, selector string) error {
	form := sel.Closest("form")
	if form.Length() == 0 {
		return fmt.Errorf("submit control %q is not inside a form", selector)
	}

	values := url.Values{}
	form.Find("input").Each(func(_ int, field *goquery.Selection) {
		name, ok := field.Attr("name")
		if !ok {
			return
		}
		switch fieldType(field) {
		case "submit", "reset", "button", "file":
		case "checkbox", "radio":
			if _, checked := field.Attr("checked"); checked {
				values.Add(name, field.AttrOr("value", "on"))
			}
		default:
			values.Add(name, field.AttrOr("value", ""))
		}
	})
	form.Find("textarea").Each(func(_ int, field *goquery.Selection) {
		if name, ok := field.Attr("name"); ok {
			values.Add(name, field.Text())
		}
	})
	if name, ok := sel.Attr("name"); ok {
		values.Add(name, sel.AttrOr("value", ""))
	}

	action := form.AttrOr("action", "")
	target, err := s.currentURL.Parse(action)
	if err != nil {
		return fmt.Errorf("form action %q is invalid: %w", action, err)
	}

	method := strings.ToUpper(form.AttrOr("method", http.MethodGet))
	if method == http.MethodGet {
		target.RawQuery = values.Encode()
		return s.request(http.MethodGet, target, nil)
	}
	return s.request(method, target, strings.NewReader(values.Encode()))
}

func (s *session) request(method string, target *url.URL, body io.Reader) error {
	ctx := s.ctx
	if s.opts.ActionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ActionTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	s.record("%s %s -> %d", method, target, resp.StatusCode)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s returned HTTP %d", method, target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot parse document from %s: %w", target, err)
	}
	s.doc = doc
	s.currentURL = resp.Request.URL
	rememberDefaults(doc)
	return nil
}

// rememberDefaults snapshots each form field's server-sent value so a later
// reset can restore it after the field has been filled.
func rememberDefaults(doc *goquery.Document) {
	doc.Find("form input").Each(func(_ int, field *goquery.Selection) {
		field.SetAttr("data-default", field.AttrOr("value", ""))
	})
	doc.Find("form textarea").Each(func(_ int, field *goquery.Selection) {
		field.SetAttr("data-default", field.Text())
	})
}

func (s *session) record(format string, args ...interface{}) {
	s.seq++
	s.journal.Record(s.seq, fmt.Sprintf(format, args...))
	s.journal.Drain(s.opts.Logger().Printf)
}

func fieldType(field *goquery.Selection) string {
	return strings.ToLower(field.AttrOr("type", "text"))
}

func isResetControl(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "input", "button":
		return fieldType(sel) == "reset"
	}
	return false
}

func isSubmitControl(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "input":
		return fieldType(sel) == "submit"
	case "button":
		// A button with no explicit type submits its form.
		return strings.ToLower(sel.AttrOr("type", "submit")) == "submit"
	}
	return false
}
