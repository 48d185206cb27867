// Package share implements the share -> clipboard -> notice fallback chain
// used by the Top Charts.
package share

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/notify"
)

// Payload is what a native share receives.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	// Name is used in the clipboard notice only.
	Name string `json:"-"`
}

// Sharer is an optional native share capability.
type Sharer interface {
	// Available reports whether sharing can be attempted at all.
	Available() bool
	Share(ctx context.Context, p Payload) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Outcome of a share attempt.
type Outcome string

// Outcomes.
const (
	OutcomeShared Outcome = "shared"
	OutcomeCopied Outcome = "copied"
	OutcomeFailed Outcome = "failed"
)

// BrandName appears in share texts.
const BrandName = "StageBook"

// PayloadFor builds the share payload of a chart performer. A configured
// share URL wins over the profile reference, which is made absolute against
// baseURL.
func PayloadFor(p model.PerformerStat, baseURL string) Payload {
	link := p.ShareURL
	if link == "" {
		link = ResolveURL(baseURL, p.ProfileURL)
	}
	return Payload{
		Title: p.Name + " • Top Charts",
		Text:  fmt.Sprintf("%s is trending on %s!", p.Name, BrandName),
		URL:   link,
		Name:  p.Name,
	}
}

// ResolveURL joins a relative reference onto base. Absolute references and
// unparseable input are returned unchanged.
func ResolveURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || base == "" {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Chain tries Sharer, then Clipboard, then reports failure through Notifier.
type Chain struct {
	Sharer    Sharer // optional
	Clipboard Clipboard
	Notifier  notify.Notifier
}

// Share runs the chain. It never panics; a capability that panics counts as
// failed.
func (c Chain) Share(ctx context.Context, p Payload) Outcome {
	n := c.Notifier
	if n == nil {
		n = notify.Nop
	}

	if c.Sharer != nil && safeAvailable(c.Sharer) {
		if err := safeCall(func() error { return c.Sharer.Share(ctx, p) }); err == nil {
			return OutcomeShared
		}
	}

	if c.Clipboard != nil {
		if err := safeCall(func() error { return c.Clipboard.WriteText(ctx, p.URL) }); err == nil {
			n.Notify(ctx, notify.LinkCopied(p.Name))
			return OutcomeCopied
		}
	}

	n.Notify(ctx, notify.ShareUnavailable())
	return OutcomeFailed
}

func safeAvailable(s Sharer) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return s.Available()
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	return fn()
}
