// Package chrome implements the browser driver on top of chromedp, driving
// a real headless (or headful) Chrome instance over the DevTools protocol.
package chrome

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/formlab/login-acceptance-tests/browser"
)

// Capabilities the chrome driver advertises beyond the basic session
// contract. Tests gate on these through the domain API.
const (
	CapabilityJavascript  = "javascript"
	CapabilityScreenshots = "screenshots"
)

type Driver struct{}

func NewDriver() *Driver { return &Driver{} }

func (d *Driver) Name() string { return "chrome" }

func (d *Driver) Capabilities() []string {
	return []string{CapabilityJavascript, CapabilityScreenshots}
}

func (d *Driver) NewSession(ctx context.Context, opts browser.SessionOpts) (browser.Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &session{
		ctx:     tabCtx,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
		opts:    opts,
		journal: browser.NewEventJournal(64),
	}
	s.listenForConsoleEvents()

	var startup []chromedp.Action
	if opts.ViewportWidth.IsDefined() && opts.ViewportHeight.IsDefined() {
		startup = append(startup, chromedp.EmulateViewport(
			int64(opts.ViewportWidth.IntValue()),
			int64(opts.ViewportHeight.IntValue()),
		))
	}
	// Run starts the browser process even when there are no startup actions.
	if err := chromedp.Run(tabCtx, startup...); err != nil {
		s.cancel()
		return nil, fmt.Errorf("cannot start Chrome: %w", err)
	}
	return s, nil
}

type session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	opts    browser.SessionOpts
	journal *browser.EventJournal
	seq     int64
	ended   bool
}

// listenForConsoleEvents captures page console output. The events arrive on
// chromedp's listener goroutine, so they go through the journal to come out
// in delivery order in the debug log.
func (s *session) listenForConsoleEvents() {
	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		e, ok := ev.(*runtime.EventConsoleAPICalled)
		if !ok {
			return
		}
		var parts []string
		for _, arg := range e.Args {
			if arg.Value != nil {
				parts = append(parts, string(arg.Value))
			} else {
				parts = append(parts, arg.Description)
			}
		}
		seq := int(atomic.AddInt64(&s.seq, 1))
		s.journal.Record(seq, fmt.Sprintf("console.%s: %s", e.Type, strings.Join(parts, " ")))
		s.journal.Drain(s.opts.Logger().Printf)
	})
}

func (s *session) Navigate(path string) error {
	u := strings.TrimSuffix(s.opts.BaseURL, "/") + path
	return s.do(fmt.Sprintf("navigate to %s", u),
		chromedp.Navigate(u),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *session) Fill(selector, value string) error {
	// SendKeys rather than SetValue so the page sees real input events.
	return s.do(fmt.Sprintf("fill %s", selector),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (s *session) Click(selector string) error {
	return s.do(fmt.Sprintf("click %s", selector),
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible),
	)
}

func (s *session) Text(selector string) (string, error) {
	var out string
	err := s.do(fmt.Sprintf("read text of %s", selector),
		chromedp.Text(selector, &out, chromedp.ByQuery),
	)
	return out, err
}

func (s *session) Value(selector string) (string, error) {
	var out string
	err := s.do(fmt.Sprintf("read value of %s", selector),
		chromedp.Value(selector, &out, chromedp.ByQuery),
	)
	return out, err
}

func (s *session) End() error {
	if s.ended {
		return nil
	}
	s.ended = true
	// Cancel the browser contexts first so the console listener stops
	// producing events, then flush and close the journal.
	s.cancel()
	s.journal.Drain(s.opts.Logger().Printf)
	s.journal.Close()
	return nil
}

func (s *session) cancel() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// do runs a sequence of chromedp actions under the configured action
// timeout. chromedp blocks until an element appears, so a missing element
// surfaces here as a deadline error; the action description is attached so
// the failure names the step that never completed.
func (s *session) do(description string, actions ...chromedp.Action) error {
	if s.ended {
		return browser.ErrSessionEnded
	}
	ctx := s.ctx
	if s.opts.ActionTimeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, s.opts.ActionTimeout)
		defer cancelTimeout()
	}
	s.opts.Logger().Printf("%s", description)
	if err := chromedp.Run(ctx, actions...); err != nil {
		return fmt.Errorf("%s: %w", description, err)
	}
	return nil
}
