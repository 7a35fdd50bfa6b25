package handler

import (
	"net/http"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/service"
)

type MenteeHandler struct {
	menteeService *service.MenteeService
}

func NewMenteeHandler(menteeService *service.MenteeService) *MenteeHandler {
	return &MenteeHandler{
		menteeService: menteeService,
	}
}

func (h *MenteeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	mentee, err := h.menteeService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mentee)
}

func (h *MenteeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var mentee model.Mentee
	err := decodeJSON(w, r, &mentee)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.menteeService.Create(r.Context(), &mentee)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *MenteeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var mentee model.Mentee
	err = decodeJSON(w, r, &mentee)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if mentee.ID == 0 {
		mentee.ID = id
	}

	updated, err := h.menteeService.Update(r.Context(), id, &mentee)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *MenteeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.menteeService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MenteeHandler) Search(w http.ResponseWriter, r *http.Request) {
	paging, err := parsePaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria := model.MenteeSearchCriteria{Name: r.URL.Query().Get("name")}

	result, err := h.menteeService.Search(r.Context(), criteria, paging)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
