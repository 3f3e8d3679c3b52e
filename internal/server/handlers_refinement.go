package server

import (
	"net/http"

	"draftforge/pkg/domain"
)

type refineRequest struct {
	Instruction string `json:"instruction"`
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/refine/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	var req refineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pending, err := s.app.Refine(r.Context(), user, projectID, itemID, req.Instruction)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/accept/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	item, err := s.app.Accept(user, projectID, itemID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/reject/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	if err := s.app.Reject(user, projectID, itemID); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

type feedbackRequest struct {
	Liked   *bool  `json:"liked"`
	Comment string `json:"comment"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/feedback/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	feedback, err := s.app.AddFeedback(user, projectID, itemID, req.Liked, req.Comment)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/pending/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	pending, exists, err := s.app.PendingFor(user, projectID, itemID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if !exists {
		writeJSON(w, http.StatusOK, map[string]any{"pending": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": pending})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	projectID, itemID, ok := projectItemIDs(r, "/api/v1/refinement/history/")
	if !ok {
		writeError(w, r, http.StatusNotFound, codeItemNotFound, "content item not found")
		return
	}
	history, err := s.app.HistoryFor(user, projectID, itemID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
