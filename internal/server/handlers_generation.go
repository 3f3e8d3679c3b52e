package server

import (
	"net/http"
	"strconv"

	"draftforge/pkg/domain"
)

const defaultOutlineCount = 5

func (s *Server) handleGenerateOutline(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	parts := pathTail(r, "/api/v1/generation/outline/")
	if len(parts) != 1 || parts[0] == "" {
		writeError(w, r, http.StatusNotFound, codeProjectNotFound, "project not found")
		return
	}
	count := defaultOutlineCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, codeValidation, "count must be an integer")
			return
		}
		count = parsed
	}
	project, err := s.app.GenerateOutline(r.Context(), user, parts[0], count)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type generateContentRequest struct {
	Instruction string `json:"instruction"`
}

func (s *Server) handleGenerateContent(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	prefix := "/api/v1/generation/section/"
	if _, _, ok := projectItemIDs(r, prefix); !ok {
		prefix = "/api/v1/generation/slide/"
	}
	projectID, itemID, ok := projectItemIDs(r, prefix)
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	var req generateContentRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	item, err := s.app.GenerateContent(r.Context(), user, projectID, itemID, req.Instruction)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleGenerateAll(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	parts := pathTail(r, "/api/v1/generation/all/")
	if len(parts) != 1 || parts[0] == "" {
		writeError(w, r, http.StatusNotFound, codeProjectNotFound, "project not found")
		return
	}
	project, err := s.app.GenerateAll(r.Context(), user, parts[0])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
