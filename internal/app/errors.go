package app

import "errors"

var (
	// ErrValidation covers malformed or missing required fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when the supplied credentials do not match.
	// This message is intended to be shown to end users and should not enable account enumeration.
	ErrInvalidCredentials = errors.New("incorrect email address or password")

	// ErrEmailAlreadyExists is returned when registering an email that is taken.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrProjectNotFound covers both absent projects and projects owned by
	// someone else, so existence never leaks across accounts.
	ErrProjectNotFound = errors.New("project not found")

	// ErrItemNotFound is returned when a content item is not in the project.
	ErrItemNotFound = errors.New("content item not found")

	// ErrGenerationFailed is returned after the primary and the single
	// fallback model attempt have both failed.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrNoPendingRefinement is returned when accept is called with nothing pending.
	ErrNoPendingRefinement = errors.New("no pending refinement")

	// ErrExportIncomplete is returned when any content item lacks generated content.
	ErrExportIncomplete = errors.New("project has items without generated content")
)
