package transport

import (
	"errors"
	"net/http"

	"maison-gda/internal/middleware"
	"maison-gda/internal/repository"
	"maison-gda/internal/service"

	"go.uber.org/zap"
)

// clientErrors maps domain errors to the status and message a caller sees
var clientErrors = []struct {
	err     error
	status  int
	message string
}{
	{repository.ErrProductNotFound, http.StatusNotFound, "product not found"},
	{repository.ErrUserNotFound, http.StatusUnauthorized, "user no longer exists"},
	{repository.ErrUserAlreadyExists, http.StatusConflict, "user with this email already exists"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
	{service.ErrTokenExpired, http.StatusUnauthorized, "refresh token expired"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "invalid refresh token"},
}

// respondWithServiceError writes the client-facing form of err. Unknown errors
// become a 500 carrying only fallback.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			logger.Debug(fallback, zap.Error(err), zap.Int("status", ce.status))
			middleware.RespondWithError(w, ce.status, ce.message)
			return
		}
	}

	logger.Error(fallback, zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
}

// decodeRequest decodes and validates a JSON body, answering 400 itself when
// the body is unusable. It reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	err := middleware.DecodeAndValidate(r, v)
	if err == nil {
		return true
	}

	logger.Debug("Request body rejected", zap.Error(err), zap.String("path", r.URL.Path))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return false
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
	return false
}
