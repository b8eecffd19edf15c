package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pjunjae/safetycam/internal/auth"
	"github.com/pjunjae/safetycam/internal/database"
	"github.com/pjunjae/safetycam/internal/metrics"
	"github.com/pjunjae/safetycam/internal/reports"
)

// dateFormat is the timestamp layout the frontend renders.
const dateFormat = "2006-01-02 15:04:05"

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type App struct {
	EventRepo    *database.EventRepository
	FeedbackRepo *database.FeedbackRepository
	CameraRepo   *database.CameraRepository
	Reports      *reports.Service
	Auth         *auth.Service
}

// EventSummary is one row of the event listing. Field names follow the
// frontend contract, not the storage columns.
type EventSummary struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail"`
	Date      string `json:"date"`
}

// EventDetail is the full event payload. LargeThumbnail reuses the
// listing thumbnail url; there is no separate large image in the schema.
type EventDetail struct {
	ID                 int64    `json:"id"`
	Type               string   `json:"type"`
	LargeThumbnail     string   `json:"largeThumbnail"`
	Images             []string `json:"images"`
	DetectedImageCount int      `json:"detectedImageCount"`
	Date               string   `json:"date"`
}

// ListEventsHandler serves one fixed-size page of events, newest first.
// There is no total count; a short page signals the end of data.
func (app *App) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p >= 1 {
		page = p
	}

	events, err := app.EventRepo.ListEvents(r.Context(), page)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, EventSummary{
			ID:        e.ID,
			Type:      e.RiskType,
			Thumbnail: e.ThumbnailURL,
			Date:      e.EventTime.Format(dateFormat),
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (app *App) EventDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if id == 0 {
		writeError(w, http.StatusBadRequest, "Event ID is required.")
		return
	}

	event, err := app.EventRepo.GetEventByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Event not found.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	eventImages, err := app.EventRepo.ListEventImages(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	images := make([]string, 0, len(eventImages))
	for _, img := range eventImages {
		images = append(images, img.ImageURL)
	}

	writeJSON(w, http.StatusOK, EventDetail{
		ID:                 event.ID,
		Type:               event.RiskType,
		LargeThumbnail:     event.ThumbnailURL,
		Images:             images,
		DetectedImageCount: event.ImageCount,
		Date:               event.EventTime.Format(dateFormat),
	})
}

type feedbackRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (app *App) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "Image URL is required.")
		return
	}

	err := app.FeedbackRepo.SubmitFeedback(r.Context(), req.ImageURL)
	if errors.Is(err, database.ErrNotFound) {
		metrics.FeedbackSubmissionsTotal.WithLabelValues("not_found").Inc()
		writeError(w, http.StatusNotFound, "Image not found in database.")
		return
	}
	if err != nil {
		metrics.FeedbackSubmissionsTotal.WithLabelValues("error").Inc()
		writeStoreError(w, r, err)
		return
	}

	metrics.FeedbackSubmissionsTotal.WithLabelValues("accepted").Inc()
	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Feedback submitted successfully."})
}

func (app *App) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	if reportType == "" {
		reportType = reports.TypeMonthly
	}

	result, err := app.Reports.Generate(r.Context(), reportType)
	if errors.Is(err, reports.ErrInvalidType) {
		writeError(w, http.StatusBadRequest, "Invalid report type.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(reportType).Inc()
	writeJSON(w, http.StatusOK, result)
}

func (app *App) ReportDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	writeJSON(w, http.StatusOK, app.Reports.Detail(id))
}

// CameraSummary mirrors the cameras table columns the frontend needs.
type CameraSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StreamURL string `json:"stream_url"`
}

func (app *App) ListCamerasHandler(w http.ResponseWriter, r *http.Request) {
	cameras, err := app.CameraRepo.ListCameras(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	summaries := make([]CameraSummary, 0, len(cameras))
	for _, c := range cameras {
		summaries = append(summaries, CameraSummary{ID: c.ID, Name: c.Name, StreamURL: c.StreamURL})
	}

	writeJSON(w, http.StatusOK, summaries)
}

type streamResponse struct {
	StreamURL string `json:"streamUrl"`
}

func (app *App) CameraStreamHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if id == 0 {
		writeError(w, http.StatusBadRequest, "Camera ID is required.")
		return
	}

	streamURL, err := app.CameraRepo.GetStreamURL(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Camera not found or not active.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, streamResponse{StreamURL: streamURL})
}
