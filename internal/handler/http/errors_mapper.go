package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

var errorStatusMap = map[error]int{
	generator.ErrInvalidPolicy:     http.StatusBadRequest,
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrEmptyIdentity:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrUnableToDecrypt: http.StatusUnprocessableEntity,
	service.ErrBackupDisabled:  http.StatusServiceUnavailable,

	store.ErrRecordNotFound:      http.StatusNotFound,
	store.ErrRecordAlreadyExists: http.StatusConflict,
	store.ErrStoreUnavailable:    http.StatusServiceUnavailable,
	store.ErrBackupNotSaved:      http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage is what the client sees for err. Input errors are echoed so
// the caller can fix the request; everything else gets a fixed text.
func errorMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusUnprocessableEntity:
		return app.MsgUnableToDecrypt
	case http.StatusNotFound:
		return app.MsgRecordNotFound
	case http.StatusConflict:
		return app.MsgRecordAlreadyExists
	case http.StatusServiceUnavailable:
		if errors.Is(err, service.ErrBackupDisabled) {
			return app.MsgBackupsDisabled
		}
	}
	return http.StatusText(status)
}

// writeServiceError logs err under funcName and writes the mapped status.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	utils.WriteError(w, errorMessage(status, err), status)
}
