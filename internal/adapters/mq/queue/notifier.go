package queue

import (
	"context"

	"github.com/okian/stagebook/internal/domain/notify"
	"github.com/okian/stagebook/pkg/logger"
)

// Notifier implements notify.Notifier by enqueuing. A full queue drops the
// notice; the caller is never blocked.
type Notifier struct {
	queue Queue
	log   logger.Logger
}

// NewNotifier wraps q. log may be nil.
func NewNotifier(q Queue, log logger.Logger) *Notifier {
	return &Notifier{queue: q, log: log}
}

// Notify enqueues n.
func (n *Notifier) Notify(ctx context.Context, notice notify.Notice) {
	if n.queue.Enqueue(context.WithoutCancel(ctx), notice) {
		return
	}
	if n.log != nil {
		n.log.Warn(ctx, "notice dropped",
			logger.String("title", notice.Title),
			logger.Error(ErrQueueFull),
		)
	}
}
