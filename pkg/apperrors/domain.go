package apperrors

import (
	"fmt"
	"net/http"
)

// Factories and predefined errors for the matching domain.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrMalformedInput is fatal to an upload batch: the file as a whole cannot
// be used (unreadable, empty, required columns missing).
func ErrMalformedInput(err error, message string) *AppError {
	return Wrap(err, CodeMalformedInput, "corpus", message, http.StatusBadRequest)
}

// ErrScoring marks an unexpected fault while scoring one candidate. The
// candidate is dropped and the batch continues, so this error is logged
// rather than returned to the client.
func ErrScoring(err error, problemID string) *AppError {
	return Wrap(err, CodeScoringFailed, "matching",
		fmt.Sprintf("Failed to score problem %s", problemID), http.StatusInternalServerError)
}

// ErrNarrativeUnavailable marks a text-generation failure or timeout. It is
// always downgraded: the match keeps its score and evidence, the narrative
// fields stay null.
func ErrNarrativeUnavailable(err error) *AppError {
	return Wrap(err, CodeNarrativeUnavailable, "narrative",
		"Narrative generation unavailable", http.StatusServiceUnavailable)
}

// Predefined auth errors.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Incorrect email or password", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "auth", "Token has expired", http.StatusUnauthorized)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already registered", http.StatusBadRequest)
	ErrWeakPassword       = New(CodeValidationFailed, "auth", "Password must be at least 8 characters long", http.StatusBadRequest)
	ErrInactiveUser       = New(CodeInvalidOperation, "auth", "Inactive user", http.StatusBadRequest)
)

// Predefined team errors.
var (
	ErrTeamNotFound   = New(CodeNotFound, "teams", "Team not found", http.StatusNotFound)
	ErrNotTeamOwner   = New(CodeForbidden, "teams", "Not authorized to access this team", http.StatusForbidden)
	ErrInvalidTeam    = New(CodeValidationFailed, "teams", "Team size must be greater than 0", http.StatusBadRequest)
	ErrDuplicateSkill = New(CodeValidationFailed, "teams", "Skill names must be unique within a profile", http.StatusBadRequest)
)

// Predefined corpus errors.
var (
	ErrProblemNotFound   = New(CodeNotFound, "corpus", "Problem not found", http.StatusNotFound)
	ErrUnsupportedFormat = New(CodeMalformedInput, "corpus", "Only .xlsx, .xls or .csv files are allowed", http.StatusBadRequest)
	ErrNoValidProblems   = New(CodeMalformedInput, "corpus", "No valid problem statements found in file", http.StatusBadRequest)
	ErrRateLimitExceeded = New(CodeLimitExceeded, "rate_limit", "Too many requests", http.StatusTooManyRequests)
)
