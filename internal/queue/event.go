// Package queue defines message payloads exchanged over the message broker.
package queue

// Review event actions.
const (
	ActionUpserted = "review.upserted"
	ActionDeleted  = "review.deleted"
)

// ReviewQueueName is the durable queue review events are published to.
const ReviewQueueName = "review.events"

// ReviewEvent is published after a review is written or deleted.  It
// carries enough information for downstream consumers to log or notify
// without calling back into the service.  Review is empty for deletions.
type ReviewEvent struct {
	Action     string `json:"action"`
	ISBN       string `json:"isbn"`
	Username   string `json:"username"`
	Review     string `json:"review,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
