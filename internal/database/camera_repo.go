package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pjunjae/safetycam/internal/models"
)

type CameraRepository struct {
	db *DB
}

func NewCameraRepository(db *DB) *CameraRepository {
	return &CameraRepository{db: db}
}

func (r *CameraRepository) ListCameras(ctx context.Context) ([]models.Camera, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, name, stream_url FROM cameras`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cameras: %w", err)
	}
	defer rows.Close()

	var cameras []models.Camera
	for rows.Next() {
		var c models.Camera
		if err := rows.Scan(&c.ID, &c.Name, &c.StreamURL); err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cameras: %w", err)
	}

	return cameras, nil
}

// GetStreamURL returns the stream url of an active camera. Inactive or
// unknown cameras both report ErrNotFound.
func (r *CameraRepository) GetStreamURL(ctx context.Context, id int64) (string, error) {
	var streamURL string
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT stream_url FROM cameras WHERE id = $1 AND is_active = 1`, id,
	).Scan(&streamURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get camera stream: %w", err)
	}
	return streamURL, nil
}
