package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bookmarks/internal/app"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/internal/store"
)

type errorResponse struct {
	err     error
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []errorResponse{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, ""},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrVersionIsNotSpecified, http.StatusInternalServerError, app.MsgInternalServerError},

	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
	{store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrBookmarkNotFound, http.StatusNotFound, app.MsgBookmarkNotFound},
	{store.ErrBookmarkAlreadyExists, http.StatusConflict, app.MsgBookmarkAlreadyExists},
}

// statusFromError returns the HTTP status and body text for err.
// Validation failures carry their own detail; anything unknown is a 500.
func statusFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if !errors.Is(err, resp.err) {
			continue
		}
		if resp.message == "" {
			return resp.status, err.Error()
		}
		return resp.status, resp.message
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
