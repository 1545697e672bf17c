package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"devchatClient/internal/api"
	"devchatClient/internal/guard"
	"devchatClient/internal/logger"
	"devchatClient/internal/middleware"
	"devchatClient/internal/session"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// fail reports an API failure to the user. A rejected token has already
// cleared the session, so the user is sent to the login view; everything else
// goes back to the view they came from with a notification.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	message := api.Message(err, fallback)

	var apiErr *api.Error
	if !errors.As(err, &apiErr) && !errors.Is(err, api.ErrNetwork) {
		logger.Log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("namespace", session.FromContext(r.Context()).Namespace),
			zap.Error(err),
		)
	}

	if errors.Is(err, api.ErrUnauthorized) {
		if middleware.WantsJSON(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: sessionExpiredMessage, Redirect: guard.LoginPath})
			return
		}
		setFlash(w, FlashError, sessionExpiredMessage)
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return
	}

	if middleware.WantsJSON(r) {
		WriteError(w, message, statusFor(err))
		return
	}
	setFlash(w, FlashError, message)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func statusFor(err error) int {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Status
	case errors.Is(err, api.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
