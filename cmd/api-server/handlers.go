package main

import (
	"errors"
	"net/http"

	"github.com/protomem/people-registry/internal/request"
	"github.com/protomem/people-registry/internal/response"
	"github.com/protomem/people-registry/internal/version"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	err := response.JSON(w, http.StatusOK, response.JSONObject{
		"status":  "OK",
		"version": version.Get(),
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}

type requestLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input requestLogin
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if input.Username == "" || input.Password == "" {
		app.badRequest(w, r, errors.New("username and password are required"))
		return
	}

	token, err := app.auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, token); err != nil {
		app.serverError(w, r, err)
	}
}
