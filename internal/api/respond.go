package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// StatusResponse is the shared success/error envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, StatusResponse{Success: false, Message: message})
}

// writeStoreError logs the underlying store failure and returns a fixed
// message. Raw driver errors never reach clients.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Store error on %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "Internal server error.")
}
