package main

import (
	"net/http"

	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/request"
	"github.com/protomem/people-registry/internal/response"
	"github.com/protomem/people-registry/internal/service"
)

type requestUser struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (req requestUser) toInput() service.UserInput {
	return service.UserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
}

func (app *application) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	filter := service.UserFilter{Username: optionalStringQueryParam(r, "username")}
	if role := optionalStringQueryParam(r, "role"); role != nil {
		rl := model.Role(*role)
		filter.Role = &rl
	}

	users, err := app.users.List(r.Context(), filter, page)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, users); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input requestUser
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	user, err := app.users.Create(r.Context(), input.toInput())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, user); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	user, err := app.users.Get(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, user); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestUser
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	user, err := app.users.Update(r.Context(), id, input.toInput())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, user); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	if err := app.users.Delete(r.Context(), id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"id": id}); err != nil {
		app.serverError(w, r, err)
	}
}
