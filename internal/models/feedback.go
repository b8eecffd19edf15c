package models

import "time"

// Feedback is a misdetection report against a single event image.
// Append-only; there is no uniqueness constraint on ImageID, so repeat
// submissions for the same image produce additional rows.
type Feedback struct {
	ID        int64
	ImageID   int64
	UserID    int64
	Notes     string
	CreatedAt time.Time
}
