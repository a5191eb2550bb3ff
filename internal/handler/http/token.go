package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brightmind-academy/payroll-engine/internal/handler/http/middleware"
	"github.com/brightmind-academy/payroll-engine/internal/handler/http/response"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
)

type TokenHandler interface {
	Revoke(w http.ResponseWriter, r *http.Request)
}

type tokenHandlerImpl struct {
	jwtService jwt.Service
}

func NewTokenHandler(jwtService jwt.Service) TokenHandler {
	return &tokenHandlerImpl{jwtService: jwtService}
}

type revokeTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Revoke blocks a leaked operator token for the rest of its lifetime on
// this instance.
func (h *tokenHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	var req revokeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := validator.Struct(&req).Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.jwtService.RevokeToken(req.Token); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Operator token revoked", "revoked_by", middleware.OperatorID(r))
	response.SuccessWithMessage(w, "Token revoked", nil)
}
