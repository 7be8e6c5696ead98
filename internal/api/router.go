package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/matickr/katalog/internal/auth"
	"github.com/matickr/katalog/internal/catalog"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc *catalog.Service, verifier auth.Verifier, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Service: svc}
	authHandler := &AuthHandler{Verifier: verifier, Log: logger}

	mux.HandleFunc("GET /api/items/get", itemsHandler.List)
	mux.HandleFunc("POST /api/items/add", itemsHandler.Add)
	mux.HandleFunc("POST /api/items/update", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/delete", itemsHandler.Delete)
	mux.HandleFunc("POST /api/auth/admin", authHandler.Admin)

	return mux
}
