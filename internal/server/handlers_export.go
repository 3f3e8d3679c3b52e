package server

import (
	"fmt"
	"net/http"
	"strconv"

	"draftforge/pkg/domain"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	parts := pathTail(r, "/api/v1/export/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		s.serveExport(w, r, user, parts[0])
	case len(parts) == 2 && parts[1] == "preview":
		preview, err := s.app.PreviewExport(user, parts[0])
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, preview)
	default:
		writeError(w, r, http.StatusNotFound, codeProjectNotFound, "project not found")
	}
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, user domain.User, projectID string) {
	result, err := s.app.ExportProject(r.Context(), user, projectID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
