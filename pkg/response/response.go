// Package response writes the API's JSON envelope.
//
// Every body is a flat object carrying "success"; payload keys sit next to
// it (e.g. {"success":true,"users":[...]}), failures add "message" and,
// depending on the failure, "errors" or "error".
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/logger"
)

// Map is the payload merged into a success envelope.
type Map = map[string]interface{}

// JSON writes body with the given status. It does not add "success".
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func envelope(success bool, data Map) Map {
	out := make(Map, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["success"] = success
	return out
}

// Success sends a 200 with data merged into the envelope.
func Success(w http.ResponseWriter, data Map) {
	JSON(w, http.StatusOK, envelope(true, data))
}

// Created sends a 201 with data merged into the envelope.
func Created(w http.ResponseWriter, data Map) {
	JSON(w, http.StatusCreated, envelope(true, data))
}

// Error sends a failure envelope with a human-readable message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope(false, Map{"message": message}))
}

// ValidationError sends a 400 with a field → message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, envelope(false, Map{
		"message": "Validation failed",
		"errors":  errs,
	}))
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Fail maps err onto the taxonomy status and writes it. Internal failures
// are logged with the request id; their cause is only echoed to the client
// outside production.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Internal("Internal server error", err)
	}

	switch e.Kind {
	case apperr.KindValidation:
		if len(e.Fields) > 0 {
			JSON(w, http.StatusBadRequest, envelope(false, Map{
				"message": e.Message,
				"errors":  e.Fields,
			}))
			return
		}
		Error(w, http.StatusBadRequest, e.Message)
	case apperr.KindInternal:
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		body := Map{"message": e.Message}
		if !config.IsProduction() && e.Err != nil {
			body["error"] = e.Err.Error()
		}
		JSON(w, http.StatusInternalServerError, envelope(false, body))
	default:
		Error(w, e.Kind.Status(), e.Message)
	}
}
