package share

import "context"

func NewTestClipboard(write func(string) error, unsupported bool) *ClipboardWriter {
	return &ClipboardWriter{write: write, unsupported: unsupported}
}

func NewTestBrowser(goos string, lookPath func(string) (string, error), run func(ctx context.Context, name string, args ...string) error) *BrowserSharer {
	return &BrowserSharer{goos: goos, lookPath: lookPath, run: run}
}
