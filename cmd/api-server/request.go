package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/service"
)

func personIDFromRequest(r *http.Request) (model.ID, error) {
	return idURLParam(r, "personId")
}

func userIDFromRequest(r *http.Request) (model.ID, error) {
	return idURLParam(r, "userId")
}

func idURLParam(r *http.Request, key string) (model.ID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return model.ID{}, fmt.Errorf("invalid %s: must be a uuid", key)
	}
	return id, nil
}

func dateQueryParam(r *http.Request, key string) (*model.Date, error) {
	if !r.URL.Query().Has(key) {
		return nil, nil
	}

	d, err := model.ParseDate(r.URL.Query().Get(key))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &d, nil
}

func intQueryParam(r *http.Request, key string, def int) (int, error) {
	if !r.URL.Query().Has(key) {
		return def, nil
	}

	i, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", key)
	}
	return i, nil
}

func optionalStringQueryParam(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}

	val := r.URL.Query().Get(key)
	return &val
}

// pageFromRequest reads pageNumber and pageSize and rejects values outside
// the accepted range.
func pageFromRequest(r *http.Request) (service.Page, error) {
	number, err := intQueryParam(r, "pageNumber", 1)
	if err != nil {
		return service.Page{}, err
	}

	size, err := intQueryParam(r, "pageSize", service.DefaultPageSize)
	if err != nil {
		return service.Page{}, err
	}

	page := service.Page{Number: number, Size: size}
	if err := page.Validate(); err != nil {
		return service.Page{}, err
	}

	return page, nil
}
