package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pjunjae/safetycam/internal/auth"
	"github.com/pjunjae/safetycam/internal/database"
	"github.com/pjunjae/safetycam/internal/metrics"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *App) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	err := app.Auth.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, database.ErrConflict) {
		writeError(w, http.StatusConflict, "Username already exists.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "User registered successfully."})
}

func (app *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	err := app.Auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		writeStoreError(w, r, err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("accepted").Inc()
	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Login successful."})
}
