package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjunjae/safetycam/internal/auth"
	"github.com/pjunjae/safetycam/internal/database"
	"github.com/pjunjae/safetycam/internal/reports"
)

func setupTestApp(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	db, err := database.NewDB(database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { db.Close() })

	app := &App{
		EventRepo:    database.NewEventRepository(db),
		FeedbackRepo: database.NewFeedbackRepository(db),
		CameraRepo:   database.NewCameraRepository(db),
		Reports:      reports.NewService(database.NewReportRepository(db)),
		Auth:         auth.NewService(database.NewUserRepository(db)),
	}
	return NewRouter(app), db
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func seedEvent(t *testing.T, db *database.DB, riskType string, eventTime time.Time, imageCount int) int64 {
	t.Helper()

	result, err := db.Conn().Exec(
		`INSERT INTO events (risk_type, thumbnail_url, event_time, image_count) VALUES ($1, $2, $3, $4)`,
		riskType, "https://cdn.example.com/thumb.jpg", eventTime, imageCount,
	)
	require.NoError(t, err, "seed event")
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func seedEventImage(t *testing.T, db *database.DB, eventID int64, imageURL string, timestamp time.Time) {
	t.Helper()

	_, err := db.Conn().Exec(
		`INSERT INTO event_images (event_id, image_url, timestamp) VALUES ($1, $2, $3)`,
		eventID, imageURL, timestamp,
	)
	require.NoError(t, err, "seed event image")
}

func TestListEventsEndpoint(t *testing.T) {
	handler, db := setupTestApp(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		seedEvent(t, db, "person", base.Add(time.Duration(i)*time.Hour), 0)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []EventSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 10)
	assert.Equal(t, "person", summaries[0].Type)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", summaries[0].Thumbnail)
	assert.Equal(t, "2024-03-01 23:00:00", summaries[0].Date)

	rec = doJSON(t, handler, http.MethodGet, "/api/events?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}

func TestListEventsEndpoint_BadPageFallsBackToFirst(t *testing.T) {
	handler, db := setupTestApp(t)

	seedEvent(t, db, "person", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 0)

	for _, page := range []string{"abc", "0", "-2", ""} {
		rec := doJSON(t, handler, http.MethodGet, "/api/events?page="+page, nil)
		require.Equal(t, http.StatusOK, rec.Code, "page=%q", page)

		var summaries []EventSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		assert.Len(t, summaries, 1, "page=%q", page)
	}
}

func TestEventDetailEndpoint(t *testing.T) {
	handler, db := setupTestApp(t)

	when := time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC)
	eventID := seedEvent(t, db, "vehicle", when, 2)
	seedEventImage(t, db, eventID, "https://cdn.example.com/a.jpg", when)
	seedEventImage(t, db, eventID, "https://cdn.example.com/b.jpg", when.Add(time.Second))

	rec := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/events/detail?id=%d", eventID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail EventDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, eventID, detail.ID)
	assert.Equal(t, "vehicle", detail.Type)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", detail.LargeThumbnail)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, detail.Images)
	assert.Equal(t, 2, detail.DetectedImageCount)
	assert.Equal(t, "2024-04-02 08:30:00", detail.Date)
}

func TestEventDetailEndpoint_Errors(t *testing.T) {
	handler, _ := setupTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/events/detail", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/events/detail?id=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/events/detail?id=4242", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Event not found.", resp.Message)
}

func TestEventDetailEndpoint_NoImages(t *testing.T) {
	handler, db := setupTestApp(t)

	eventID := seedEvent(t, db, "person", time.Now().UTC(), 0)

	rec := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/events/detail?id=%d", eventID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// images must serialize as [], not null.
	assert.Contains(t, rec.Body.String(), `"images":[]`)
}

func TestFeedbackEndpoint(t *testing.T) {
	handler, db := setupTestApp(t)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	eventID := seedEvent(t, db, "person", when, 1)
	imageURL := "https://cdn.example.com/" + uuid.New().String() + ".jpg"
	seedEventImage(t, db, eventID, imageURL, when)

	rec := doJSON(t, handler, http.MethodPost, "/api/feedback", map[string]string{"imageUrl": imageURL})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var hasFeedback bool
	require.NoError(t, db.Conn().QueryRow(
		`SELECT has_feedback FROM event_images WHERE image_url = $1`, imageURL,
	).Scan(&hasFeedback))
	assert.True(t, hasFeedback)
}

func TestFeedbackEndpoint_Errors(t *testing.T) {
	handler, _ := setupTestApp(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/feedback", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/feedback", map[string]string{"imageUrl": "https://cdn.example.com/ghost.jpg"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsEndpoint(t *testing.T) {
	handler, db := setupTestApp(t)

	seedEvent(t, db, "person", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0)
	seedEvent(t, db, "pet", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 0)
	seedEvent(t, db, "vehicle", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 0)

	rec := doJSON(t, handler, http.MethodGet, "/api/reports?type=monthly", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result []reports.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "2024-04", result[0].MonthOrYear)
	assert.Equal(t, 1, result[0].Total)
	assert.Equal(t, "2024-03", result[1].MonthOrYear)
	assert.Equal(t, 2, result[1].Total)
	assert.Equal(t, reports.BucketID("2024-04", 1), result[0].ID)
}

func TestReportsEndpoint_TypeHandling(t *testing.T) {
	handler, db := setupTestApp(t)

	seedEvent(t, db, "person", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0)

	// Missing type defaults to monthly, mirroring the original frontend
	// contract.
	rec := doJSON(t, handler, http.MethodGet, "/api/reports", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/reports?type=yearly", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/reports?type=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportDetailEndpoint(t *testing.T) {
	handler, _ := setupTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/reports/detail?id=whatever", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail reports.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "whatever", detail.ID)
	require.Len(t, detail.Stats, 4)
	assert.Equal(t, reports.Stat{Label: "Person detected", Value: 30}, detail.Stats[0])
}

func TestCamerasEndpoints(t *testing.T) {
	handler, db := setupTestApp(t)

	result, err := db.Conn().Exec(
		`INSERT INTO cameras (name, stream_url, is_active) VALUES ($1, $2, 1)`,
		"Front door", "rtsp://cam1/stream",
	)
	require.NoError(t, err)
	activeID, err := result.LastInsertId()
	require.NoError(t, err)

	_, err = db.Conn().Exec(
		`INSERT INTO cameras (name, stream_url, is_active) VALUES ($1, $2, 0)`,
		"Garage", "rtsp://cam2/stream",
	)
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodGet, "/api/cameras", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cameras []CameraSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cameras))
	assert.Len(t, cameras, 2)

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/cameras/stream?id=%d", activeID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"streamUrl":"rtsp://cam1/stream"`)

	rec = doJSON(t, handler, http.MethodGet, "/api/cameras/stream?id=999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/cameras/stream", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthEndpoints(t *testing.T) {
	handler, _ := setupTestApp(t)

	username := "user-" + uuid.New().String()
	creds := map[string]string{"username": username, "password": "s3cret"}

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", creds)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/register",
		map[string]string{"password": "s3cret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPingEndpoint(t *testing.T) {
	handler, _ := setupTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}
