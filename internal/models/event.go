package models

import "time"

// Event is a single detection produced by the camera pipeline. Rows are
// written by the detection side; this service only reads them.
type Event struct {
	ID           int64
	RiskType     string
	ThumbnailURL string
	EventTime    time.Time
	ImageCount   int
}

// EventImage is one captured frame belonging to an event. HasFeedback is
// the only column this service ever mutates.
type EventImage struct {
	ID          int64
	EventID     int64
	ImageURL    string
	Timestamp   time.Time
	HasFeedback bool
}
