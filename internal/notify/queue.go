package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier accepts outbound messages. Enqueue never blocks and never fails
// the caller.
type Notifier interface {
	Enqueue(msg Message)
}

// Queue is a buffered outbound queue drained by a single worker.
type Queue struct {
	sender  Sender
	jobs    chan Message
	timeout time.Duration
	log     *logrus.Entry

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewQueue(sender Sender, size int) *Queue {
	if size <= 0 {
		size = 1
	}
	q := &Queue{
		sender:  sender,
		jobs:    make(chan Message, size),
		timeout: 30 * time.Second,
		log:     logrus.WithField("component", "notify"),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) Enqueue(msg Message) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.log.WithField("template", msg.Template).Warn("queue closed, dropping notification")
		return
	}

	select {
	case q.jobs <- msg:
	default:
		q.log.WithFields(logrus.Fields{
			"template": msg.Template,
			"to":       msg.To,
		}).Warn("notification queue full, dropping message")
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for msg := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.sender.Send(ctx, msg)
		cancel()

		entry := q.log.WithFields(logrus.Fields{
			"template": msg.Template,
			"to":       msg.To,
		})
		if err != nil {
			entry.WithError(err).Error("failed to send notification")
			continue
		}
		entry.Debug("notification sent")
	}
}

// Close stops accepting messages and waits for the worker to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	<-q.done
}
