package handler

import (
	"net/http"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/service"
)

type ProgramHandler struct {
	programService *service.ProgramService
	workflow       *service.GoalWorkflow
}

func NewProgramHandler(programService *service.ProgramService, workflow *service.GoalWorkflow) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
		workflow:       workflow,
	}
}

func (h *ProgramHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	program, err := h.programService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, program)
}

func (h *ProgramHandler) Create(w http.ResponseWriter, r *http.Request) {
	var program model.Program
	err := decodeJSON(w, r, &program)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.programService.Create(r.Context(), &program)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ProgramHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var program model.Program
	err = decodeJSON(w, r, &program)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if program.ID == 0 {
		program.ID = id
	}

	updated, err := h.programService.Update(r.Context(), id, &program)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ProgramHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.workflow.DeleteProgram(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProgramHandler) Search(w http.ResponseWriter, r *http.Request) {
	paging, err := parsePaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	mentorID, err := parseInt64Query(r, "mentorId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	menteeID, err := parseInt64Query(r, "menteeId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	completed, err := parseBoolQuery(r, "completed")
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria := model.ProgramSearchCriteria{
		MentorID:  mentorID,
		MenteeID:  menteeID,
		Completed: completed,
	}

	result, err := h.programService.Search(r.Context(), criteria, paging)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Recompute re-derives the program's completion state from its goals.
func (h *ProgramHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	program, err := h.workflow.Recompute(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, program)
}
