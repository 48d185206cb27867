// Package share provides the host capabilities behind the share chain: a
// system clipboard and a browser based share target.
package share

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/okian/stagebook/internal/domain/share"
)

// ClipboardWriter writes to the system clipboard.
type ClipboardWriter struct {
	write       func(string) error
	unsupported bool
}

// NewClipboardWriter returns a writer backed by the host clipboard.
func NewClipboardWriter() *ClipboardWriter {
	return &ClipboardWriter{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// WriteText implements share.Clipboard.
func (c *ClipboardWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.unsupported {
		return share.ErrClipboardUnavailable
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("%w: %w", share.ErrClipboardUnavailable, err)
	}
	return nil
}

var _ share.Clipboard = (*ClipboardWriter)(nil)
