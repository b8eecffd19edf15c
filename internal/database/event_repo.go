package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pjunjae/safetycam/internal/models"
)

// EventPageSize is the fixed number of events per listing page.
const EventPageSize = 10

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListEvents returns one page of events, newest first. Pages start at 1;
// anything lower is treated as the first page. There is no total count, so
// callers detect the end of data by receiving a short page.
func (r *EventRepository) ListEvents(ctx context.Context, page int) ([]models.Event, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * EventPageSize

	query := `
		SELECT id, risk_type, thumbnail_url, event_time
		FROM events
		ORDER BY event_time DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.conn.QueryContext(ctx, query, EventPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.RiskType, &e.ThumbnailURL, &e.EventTime); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}

// GetEventByID fetches a single event. Returns ErrNotFound when no row
// matches.
func (r *EventRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, risk_type, thumbnail_url, event_time, image_count
		FROM events
		WHERE id = $1`

	var e models.Event
	err := r.db.conn.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.RiskType, &e.ThumbnailURL, &e.EventTime, &e.ImageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

// ListEventImages returns the images for an event in capture order.
func (r *EventRepository) ListEventImages(ctx context.Context, eventID int64) ([]models.EventImage, error) {
	query := `
		SELECT id, event_id, image_url, timestamp, has_feedback
		FROM event_images
		WHERE event_id = $1
		ORDER BY timestamp ASC`

	rows, err := r.db.conn.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event images: %w", err)
	}
	defer rows.Close()

	var images []models.EventImage
	for rows.Next() {
		var img models.EventImage
		if err := rows.Scan(&img.ID, &img.EventID, &img.ImageURL, &img.Timestamp, &img.HasFeedback); err != nil {
			return nil, fmt.Errorf("failed to scan event image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event images: %w", err)
	}

	return images, nil
}
