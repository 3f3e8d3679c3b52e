package server

import (
	"net/http"
	"strconv"

	"draftforge/internal/app"
	"draftforge/pkg/domain"
	"draftforge/pkg/store"
)

type createProjectRequest struct {
	Title        string   `json:"title"`
	Topic        string   `json:"topic"`
	Description  string   `json:"description"`
	DocumentType string   `json:"document_type"`
	Items        []string `json:"items"`
}

type updateProjectRequest struct {
	Title       *string              `json:"title"`
	Topic       *string              `json:"topic"`
	Description *string              `json:"description"`
	Items       []domain.ContentItem `json:"items"`
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		filter := store.ProjectFilter{
			Search: r.URL.Query().Get("search"),
		}
		if raw := r.URL.Query().Get("document_type"); raw != "" {
			docType, ok := domain.ParseDocumentType(raw)
			if !ok {
				writeError(w, r, http.StatusBadRequest, codeValidation, "document_type must be docx or pptx")
				return
			}
			filter.DocumentType = docType
		}
		filter.Skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
		filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
		projects, err := s.app.ListProjects(user, filter)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		if projects == nil {
			projects = []domain.Project{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
	case http.MethodPost:
		var req createProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}
		project, err := s.app.CreateProject(user, app.ProjectInput{
			Title:        req.Title,
			Topic:        req.Topic,
			Description:  req.Description,
			DocumentType: req.DocumentType,
			ItemTitles:   req.Items,
		})
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, project)
	default:
		methodNotAllowed(w, r)
	}
}

func (s *Server) handleProjectByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	parts := pathTail(r, "/api/v1/projects/")
	if len(parts) != 1 || parts[0] == "" {
		writeError(w, r, http.StatusNotFound, codeProjectNotFound, "project not found")
		return
	}
	projectID := parts[0]
	switch r.Method {
	case http.MethodGet:
		project, err := s.app.GetProject(user, projectID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	case http.MethodPut:
		var req updateProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}
		project, err := s.app.UpdateProject(user, projectID, app.ProjectPatch{
			Title:       req.Title,
			Topic:       req.Topic,
			Description: req.Description,
			Items:       req.Items,
		})
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	case http.MethodDelete:
		if err := s.app.DeleteProject(user, projectID); err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w, r)
	}
}
