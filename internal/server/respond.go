package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"draftforge/internal/app"
	"draftforge/internal/util"
)

// Machine-readable error codes returned in the "code" field.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeInvalidToken     = "AUTH_INVALID_TOKEN"
	codeBadCredentials   = "AUTH_INVALID_CREDENTIALS"
	codeProjectNotFound  = "PROJECT_NOT_FOUND"
	codeItemNotFound     = "ITEM_NOT_FOUND"
	codeEmailRegistered  = "EMAIL_ALREADY_REGISTERED"
	codeNoPending        = "NO_PENDING_REFINEMENT"
	codeExportIncomplete = "EXPORT_INCOMPLETE"
	codeGenerationFailed = "GENERATION_FAILED"
	codeRateLimited      = "RATE_LIMITED"
	codeInternal         = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: util.RequestIDFromRequest(r),
	})
}

// writeAppError maps component-level sentinels to HTTP status and code.
// Anything unmapped is a 500 with no internal detail leaked.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrValidation):
		writeError(w, r, http.StatusBadRequest, codeValidation, validationMessage(err))
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, codeBadCredentials, app.ErrInvalidCredentials.Error())
	case errors.Is(err, app.ErrProjectNotFound):
		writeError(w, r, http.StatusNotFound, codeProjectNotFound, app.ErrProjectNotFound.Error())
	case errors.Is(err, app.ErrItemNotFound):
		writeError(w, r, http.StatusNotFound, codeItemNotFound, app.ErrItemNotFound.Error())
	case errors.Is(err, app.ErrEmailAlreadyExists):
		writeError(w, r, http.StatusConflict, codeEmailRegistered, app.ErrEmailAlreadyExists.Error())
	case errors.Is(err, app.ErrNoPendingRefinement):
		writeError(w, r, http.StatusConflict, codeNoPending, app.ErrNoPendingRefinement.Error())
	case errors.Is(err, app.ErrExportIncomplete):
		writeError(w, r, http.StatusUnprocessableEntity, codeExportIncomplete, app.ErrExportIncomplete.Error())
	case errors.Is(err, app.ErrGenerationFailed):
		writeError(w, r, http.StatusBadGateway, codeGenerationFailed, app.ErrGenerationFailed.Error())
	default:
		util.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// validationMessage surfaces the human-readable part of a wrapped
// validation error without any internal context.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, app.ErrValidation.Error()); idx >= 0 {
		detail := strings.TrimPrefix(msg[idx+len(app.ErrValidation.Error()):], ": ")
		if detail != "" {
			return detail
		}
	}
	return app.ErrValidation.Error()
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, codeValidation, "method not allowed")
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusUnauthorized, codeInvalidToken, "missing or invalid token")
}
