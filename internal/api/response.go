package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/matickr/katalog/internal/catalog"
	"github.com/matickr/katalog/internal/model"
)

// mutationResponse is the body of every item mutation endpoint. Item is set
// on successful add and update.
type mutationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Item    *model.Item `json:"item,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("error encoding response")
		}
	}
}

// jsonError writes a plain JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// failure writes a mutation failure response.
func failure(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, mutationResponse{Success: false, Message: message})
}

// serviceError maps a catalog error to the right status and failure body.
func serviceError(w http.ResponseWriter, err error) {
	var verr catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		failure(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, catalog.ErrNotFound):
		failure(w, http.StatusNotFound, "item not found")
	default:
		failure(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
