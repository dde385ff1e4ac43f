package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// handleError maps domain errors onto HTTP status codes. Unknown errors
// are logged and answered with a bare 500.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var redirect *domain.RedirectToUserError
	switch {
	case errors.As(err, &redirect):
		writeError(w, http.StatusUnprocessableEntity, redirect.Message)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoAttachments):
		writeError(w, http.StatusBadRequest, "no attachments to process")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
