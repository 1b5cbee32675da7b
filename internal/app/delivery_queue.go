package app

import (
	"context"
)

// JobSubmitter hands a job to a background worker pool.
type JobSubmitter interface {
	Submit(job func(ctx context.Context))
}

// AsyncDeliveryQueue routes enqueued reminders through a worker pool to the
// delivery service, keeping the dispatch loop fire-and-forget.
type AsyncDeliveryQueue struct {
	submitter JobSubmitter
	delivery  *DeliveryService
}

func NewAsyncDeliveryQueue(submitter JobSubmitter, delivery *DeliveryService) *AsyncDeliveryQueue {
	return &AsyncDeliveryQueue{submitter: submitter, delivery: delivery}
}

// EnqueueDelivery submits one reminder delivery; the outcome is observable
// only through task-status reporting, never awaited by the caller.
func (q *AsyncDeliveryQueue) EnqueueDelivery(chatID int64, text string) {
	q.submitter.Submit(func(ctx context.Context) {
		q.delivery.Deliver(ctx, chatID, text)
	})
}
