package main

import (
	"net/http"
	"time"

	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/request"
	"github.com/protomem/people-registry/internal/response"
	"github.com/protomem/people-registry/internal/service"
)

// Photos arrive base64 encoded, so the body limit is larger than the 1MB
// photo cap.
const _personBodyMaxBytes = 8 << 20

type requestPerson struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CPF       string     `json:"cpf"`
	BirthDate model.Date `json:"birthDate"`
	Sex       model.Sex  `json:"sex"`
	Photo     []byte     `json:"photo"`
}

func (req requestPerson) toInput() service.PersonInput {
	return service.PersonInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CPF:       req.CPF,
		BirthDate: req.BirthDate.Time(),
		Sex:       req.Sex,
		Photo:     req.Photo,
	}
}

type responsePerson struct {
	ID        model.ID   `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CPF       string     `json:"cpf"`
	BirthDate model.Date `json:"birthDate"`
	Sex       model.Sex  `json:"sex"`
	Photo     []byte     `json:"photo,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func newResponsePerson(p model.Person) responsePerson {
	return responsePerson{
		ID:        p.ID(),
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		CPF:       p.CPF(),
		BirthDate: model.Date(p.BirthDate()),
		Sex:       p.Sex(),
		Photo:     p.Photo(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func (app *application) handleListPeople(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	birthDate, err := dateQueryParam(r, "birthDate")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	filter := service.PersonFilter{
		Name: optionalStringQueryParam(r, "name"),
		CPF:  optionalStringQueryParam(r, "cpf"),
	}
	if birthDate != nil {
		t := birthDate.Time()
		filter.BirthDate = &t
	}
	if sex := optionalStringQueryParam(r, "sex"); sex != nil {
		s := model.Sex(*sex)
		filter.Sex = &s
	}

	people, err := app.people.List(r.Context(), filter, page)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, people); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var input requestPerson
	if err := request.DecodeJSONStrictLimit(w, r, &input, _personBodyMaxBytes); err != nil {
		app.badRequest(w, r, err)
		return
	}

	person, err := app.people.Create(r.Context(), input.toInput())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, newResponsePerson(person)); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	person, err := app.people.Get(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, newResponsePerson(person)); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestPerson
	if err := request.DecodeJSONStrictLimit(w, r, &input, _personBodyMaxBytes); err != nil {
		app.badRequest(w, r, err)
		return
	}

	person, err := app.people.Update(r.Context(), id, input.toInput())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, newResponsePerson(person)); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	if err := app.people.Delete(r.Context(), id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"id": id}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetActivePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	entry, err := app.people.ActivePhoto(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, entry); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListPhotoHistory(w http.ResponseWriter, r *http.Request) {
	id, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	history, err := app.people.PhotoHistory(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	if history == nil {
		history = []model.PhotoHistoryEntry{}
	}

	if err := response.JSON(w, http.StatusOK, history); err != nil {
		app.serverError(w, r, err)
	}
}
