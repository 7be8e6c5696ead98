package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/matickr/katalog/internal/auth"
)

// AuthHandler handles the admin authentication endpoint.
type AuthHandler struct {
	Verifier auth.Verifier
	Log      zerolog.Logger
}

type adminAuthRequest struct {
	Password string `json:"password"`
}

type adminAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
}

// Admin handles POST /api/auth/admin. The check is stateless: no token or
// session is issued, the frontend keeps its own flag.
func (h *AuthHandler) Admin(w http.ResponseWriter, r *http.Request) {
	var req adminAuthRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.Verifier.Verify(req.Password) {
		h.Log.Warn().Str("remote", r.RemoteAddr).Msg("admin authentication failed")
		jsonResponse(w, http.StatusUnauthorized, adminAuthResponse{
			Authenticated: false,
			Message:       "Invalid password",
		})
		return
	}

	h.Log.Info().Str("remote", r.RemoteAddr).Msg("admin authenticated")
	jsonResponse(w, http.StatusOK, adminAuthResponse{
		Authenticated: true,
		Message:       "Authentication successful",
	})
}
