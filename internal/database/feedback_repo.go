package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pjunjae/safetycam/internal/models"
)

// feedbackNotes is the note stored with every misdetection report. The
// frontend sends no free text yet.
const feedbackNotes = "Misdetection reported from frontend."

// feedbackUserID is a placeholder until feedback is tied to a session.
const feedbackUserID = 1

type FeedbackRepository struct {
	db *DB
}

func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// SubmitFeedback records a misdetection report for the image with the given
// url. The image lookup, the feedback insert, and the has_feedback flag
// update run in one transaction: either both writes commit or neither does.
// Returns ErrNotFound when no image matches the url, in which case nothing
// is written.
func (r *FeedbackRepository) SubmitFeedback(ctx context.Context, imageURL string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var imageID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM event_images WHERE image_url = $1`, imageURL,
	).Scan(&imageID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up image: %w", err)
	}

	fb := models.Feedback{
		ImageID: imageID,
		UserID:  feedbackUserID,
		Notes:   feedbackNotes,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO feedback (image_id, user_id, notes) VALUES ($1, $2, $3)`,
		fb.ImageID, fb.UserID, fb.Notes,
	); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE event_images SET has_feedback = 1 WHERE id = $1`, imageID,
	); err != nil {
		return fmt.Errorf("failed to flag image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback: %w", err)
	}
	return nil
}
