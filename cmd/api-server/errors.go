package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/protomem/people-registry/internal/auth"
	"github.com/protomem/people-registry/internal/ctxstore"
	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/response"
	"github.com/protomem/people-registry/internal/service"
	"github.com/protomem/people-registry/internal/validator"
)

func (app *application) reportServerError(r *http.Request, err error) {
	var (
		message = err.Error()
		method  = r.Method
		url     = r.URL.String()
		tid     = ctxstore.FromOr(r.Context(), _traceIDKey, "")
	)

	requestAttrs := slog.Group("request", "method", method, "url", url, _traceIDKey.String(), tid)
	app.serverLogger().Error(message, requestAttrs)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	app.errorResponse(w, r, status, response.JSONObject{"error": capitalize(message)}, headers)
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, body any, headers http.Header) {
	err := response.JSONWithHeaders(w, status, body, headers)
	if err != nil {
		app.reportServerError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	app.errorMessage(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorMessage(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

// failedValidation answers 409 with every violated rule.
func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, verr *validator.Error) {
	app.errorResponse(w, r, http.StatusConflict, response.JSONObject{
		"error":       "Validation failed",
		"details":     verr.Errors,
		"fieldErrors": verr.FieldErrors,
	}, nil)
}

func (app *application) invalidAuthenticationToken(w http.ResponseWriter, r *http.Request) {
	headers := make(http.Header)
	headers.Set("WWW-Authenticate", "Bearer")

	app.errorMessage(w, r, http.StatusUnauthorized, "Invalid or missing authentication token", headers)
}

func (app *application) notPermitted(w http.ResponseWriter, r *http.Request) {
	message := "Your account does not have the role required for this resource"
	app.errorMessage(w, r, http.StatusForbidden, message, nil)
}

// handleServiceError maps service outcomes to responses. Every handler sends
// its service errors through here so the mapping stays in one place.
func (app *application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validator.Error

	switch {
	case errors.As(err, &verr):
		app.failedValidation(w, r, verr)
	case errors.Is(err, model.ErrExists):
		app.errorMessage(w, r, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, model.ErrNotFound):
		app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrPhoto):
		app.errorMessage(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		app.errorMessage(w, r, http.StatusUnauthorized, err.Error(), nil)
	default:
		app.serverError(w, r, err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
