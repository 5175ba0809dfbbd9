package entities

import "time"

// Report is a durable moderation-queue entry keyed by review id. It
// exists until an operator resolves it, at which point it is cleared and
// the underlying review is either restored or deleted.
type Report struct {
	ReviewID  string    `json:"review_id" db:"review_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
