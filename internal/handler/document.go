package handler

import (
	"errors"
	"net/http"

	"github.com/livingprogress/mentorme/internal/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	maxUploadSize   int64
}

func NewDocumentHandler(documentService *service.DocumentService, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload stores the multipart "file" field as a document of the goal.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	goalID, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, badRequest("file too large: maximum size is %d MB", h.maxUploadSize>>20))
			return
		}
		writeError(w, r, badRequest("file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	document, err := h.documentService.Upload(r.Context(), goalID, file, header)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, document)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	goalID, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	documents, err := h.documentService.Documents(r.Context(), goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documents)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.documentService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
