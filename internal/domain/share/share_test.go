package share_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/notify"
	"github.com/okian/stagebook/internal/domain/share"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSharer struct {
	available bool
	err       error
	panics    bool
	calls     int
}

func (f *fakeSharer) Available() bool { return f.available }

func (f *fakeSharer) Share(context.Context, share.Payload) error {
	f.calls++
	if f.panics {
		panic("boom")
	}
	return f.err
}

type fakeClipboard struct {
	err    error
	panics bool
	text   string
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) error {
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type recorder struct{ notices []notify.Notice }

func (r *recorder) Notify(_ context.Context, n notify.Notice) { r.notices = append(r.notices, n) }

func TestPayloadFor(t *testing.T) {
	Convey("Given a chart performer", t, func() {
		p := model.PerformerStat{ID: "2", Name: "DJ Nova", ProfileURL: "/artist/2"}

		Convey("When no share URL is configured", func() {
			payload := share.PayloadFor(p, "https://stagebook.example")

			Convey("Then the profile reference is made absolute", func() {
				So(payload.Title, ShouldEqual, "DJ Nova • Top Charts")
				So(payload.Text, ShouldEqual, "DJ Nova is trending on StageBook!")
				So(payload.URL, ShouldEqual, "https://stagebook.example/artist/2")
			})
		})

		Convey("When a share URL is configured", func() {
			p.ShareURL = "https://short.example/nova"
			So(share.PayloadFor(p, "https://stagebook.example").URL, ShouldEqual, "https://short.example/nova")
		})

		Convey("When there is no base URL", func() {
			So(share.PayloadFor(p, "").URL, ShouldEqual, "/artist/2")
		})
	})
}

func TestChain(t *testing.T) {
	Convey("Given a share chain", t, func() {
		ctx := context.Background()
		payload := share.Payload{Title: "t", Text: "x", URL: "https://stagebook.example/artist/1", Name: "Ava"}
		rec := &recorder{}

		Convey("When native share works", func() {
			s := &fakeSharer{available: true}
			cb := &fakeClipboard{}
			out := share.Chain{Sharer: s, Clipboard: cb, Notifier: rec}.Share(ctx, payload)

			Convey("Then nothing else is tried", func() {
				So(out, ShouldEqual, share.OutcomeShared)
				So(cb.text, ShouldBeEmpty)
				So(rec.notices, ShouldBeEmpty)
			})
		})

		Convey("When native share is absent", func() {
			cb := &fakeClipboard{}
			out := share.Chain{Clipboard: cb, Notifier: rec}.Share(ctx, payload)

			Convey("Then the link is copied and the user told", func() {
				So(out, ShouldEqual, share.OutcomeCopied)
				So(cb.text, ShouldEqual, payload.URL)
				So(len(rec.notices), ShouldEqual, 1)
				So(rec.notices[0].Title, ShouldEqual, "Link copied")
				So(rec.notices[0].Description, ShouldEqual, "Ava's profile link is in your clipboard.")
			})
		})

		Convey("When native share is unavailable on this platform", func() {
			s := &fakeSharer{available: false}
			out := share.Chain{Sharer: s, Clipboard: &fakeClipboard{}, Notifier: rec}.Share(ctx, payload)

			So(out, ShouldEqual, share.OutcomeCopied)
			So(s.calls, ShouldEqual, 0)
		})

		Convey("When native share fails or panics", func() {
			for _, s := range []*fakeSharer{
				{available: true, err: share.ErrShareUnavailable},
				{available: true, err: errors.New("cancelled")},
				{available: true, panics: true},
			} {
				out := share.Chain{Sharer: s, Clipboard: &fakeClipboard{}, Notifier: rec}.Share(ctx, payload)
				So(out, ShouldEqual, share.OutcomeCopied)
			}
		})

		Convey("When both share and clipboard fail", func() {
			cb := &fakeClipboard{err: share.ErrClipboardUnavailable}
			out := share.Chain{Sharer: &fakeSharer{available: true, err: errors.New("x")}, Clipboard: cb, Notifier: rec}.Share(ctx, payload)

			Convey("Then a failure notice is the only surfaced error", func() {
				So(out, ShouldEqual, share.OutcomeFailed)
				So(len(rec.notices), ShouldEqual, 1)
				So(rec.notices[0].Title, ShouldEqual, "Share unavailable")
			})
		})

		Convey("When the clipboard panics and no notifier is set", func() {
			var out share.Outcome
			So(func() {
				out = share.Chain{Clipboard: &fakeClipboard{panics: true}}.Share(ctx, payload)
			}, ShouldNotPanic)
			So(out, ShouldEqual, share.OutcomeFailed)
		})
	})
}
