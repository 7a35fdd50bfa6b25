package handler

import (
	"net/http"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
	workflow    *service.GoalWorkflow
}

func NewGoalHandler(goalService *service.GoalService, workflow *service.GoalWorkflow) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		workflow:    workflow,
	}
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var goal model.Goal
	err := decodeJSON(w, r, &goal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.workflow.CreateGoal(r.Context(), &goal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var goal model.Goal
	err = decodeJSON(w, r, &goal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The path carries the id; a body id is only checked when present
	if goal.ID == 0 {
		goal.ID = id
	}

	updated, err := h.workflow.UpdateGoal(r.Context(), id, &goal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, err = h.workflow.DeleteGoal(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Search(w http.ResponseWriter, r *http.Request) {
	paging, err := parsePaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	programID, err := parseInt64Query(r, "programId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	completed, err := parseBoolQuery(r, "completed")
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria := model.GoalSearchCriteria{
		ProgramID: programID,
		Completed: completed,
		Subject:   r.URL.Query().Get("subject"),
	}

	result, err := h.goalService.Search(r.Context(), criteria, paging)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
