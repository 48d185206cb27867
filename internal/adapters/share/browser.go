package share

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/okian/stagebook/internal/domain/share"
)

// BrowserSharer shares a payload by opening its link in the default browser.
type BrowserSharer struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewBrowserSharer returns a sharer for the running OS.
func NewBrowserSharer() *BrowserSharer {
	return &BrowserSharer{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Start()
		},
	}
}

func (b *BrowserSharer) command(link string) (string, []string, bool) {
	switch b.goos {
	case "darwin":
		return "open", []string{link}, true
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{link}, true
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, true
	default:
		return "", nil, false
	}
}

// Available reports whether an opener exists on this host.
func (b *BrowserSharer) Available() bool {
	name, _, ok := b.command("")
	if !ok {
		return false
	}
	_, err := b.lookPath(name)
	return err == nil
}

// Share implements share.Sharer.
func (b *BrowserSharer) Share(ctx context.Context, p share.Payload) error {
	if p.URL == "" {
		return fmt.Errorf("%w: empty link", share.ErrShareUnavailable)
	}
	name, args, ok := b.command(p.URL)
	if !ok {
		return fmt.Errorf("%w: unsupported OS %s", share.ErrShareUnavailable, b.goos)
	}
	if err := b.run(ctx, name, args...); err != nil {
		return fmt.Errorf("%w: %w", share.ErrShareUnavailable, err)
	}
	return nil
}

var _ share.Sharer = (*BrowserSharer)(nil)
