package login

import (
	"net/http"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCredentials = "invalid email or password"
)

type Handler struct {
	verifier CredentialVerifier
	logger   Logger
}

func NewHandler(verifier CredentialVerifier, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		logger:   logger,
	}
}

// Handle POST /api/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.verifier.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		// Причина отказа не раскрывается клиенту
		h.logger.Warn("POST /auth/login - Rejected login for %s", req.Email)
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	h.logger.Info("POST /auth/login - Successful login for %s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Token: token})
}
