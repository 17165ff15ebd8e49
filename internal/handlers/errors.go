package handlers

import (
	"encoding/json"
	"net/http"
)

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONMessage sends a JSON response with a single "message" field.
// Used for 404s, matching the error taxonomy: validation and auth failures
// carry "error", missing-resource responses carry "message".
func JSONMessage(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
