package handler

import (
	"net/http"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/service"
)

type MentorHandler struct {
	mentorService *service.MentorService
}

func NewMentorHandler(mentorService *service.MentorService) *MentorHandler {
	return &MentorHandler{
		mentorService: mentorService,
	}
}

func (h *MentorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	mentor, err := h.mentorService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mentor)
}

func (h *MentorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var mentor model.Mentor
	err := decodeJSON(w, r, &mentor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.mentorService.Create(r.Context(), &mentor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *MentorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var mentor model.Mentor
	err = decodeJSON(w, r, &mentor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if mentor.ID == 0 {
		mentor.ID = id
	}

	updated, err := h.mentorService.Update(r.Context(), id, &mentor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *MentorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.mentorService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MentorHandler) Search(w http.ResponseWriter, r *http.Request) {
	paging, err := parsePaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria := model.MentorSearchCriteria{Name: r.URL.Query().Get("name")}

	result, err := h.mentorService.Search(r.Context(), criteria, paging)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
