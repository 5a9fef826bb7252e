package apperror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors surfaced to clients. Messages are user-facing and must not
// carry hashes, secrets, or stack traces.
var (
	ErrUnauthenticated = errors.New("unauthorized: no token provided")
	ErrInvalidToken    = errors.New("forbidden: invalid token")
	ErrForbidden       = errors.New("forbidden: insufficient permissions")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotFound        = errors.New("not found")

	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrInvalidQuery            = errors.New("query must not be empty")
	ErrAnalysisFailed          = errors.New("analysis failed")
	ErrMalformedAnalysisOutput = errors.New("failed to parse analysis results")
	ErrLLMUnavailable          = errors.New("assistant is temporarily unavailable")

	ErrPersistence = errors.New("persistence failure")
)

// FromPersistence maps a recognizable uniqueness violation to its domain
// error; anything else is reported as a generic persistence failure.
func FromPersistence(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return ErrPersistence
}
