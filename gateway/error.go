package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a gateway failure for the orchestrator.
type ErrorKind int

const (
	// KindUnknown covers transport failures and anything else that does not
	// match a more specific kind.
	KindUnknown ErrorKind = iota
	// KindLiveness means the backend did not answer the health probe;
	// fatal to the current submission, the analysis call is never made.
	KindLiveness
	// KindAnalysis means the backend answered the analysis call with a
	// structured error of its own.
	KindAnalysis
	// KindAuthRequired means the backend rejected the request for missing
	// or invalid credentials; surfaced as an actionable redirect rather
	// than a dead end.
	KindAuthRequired
)

// Error is the single error envelope crossing the network boundary into the
// orchestrator. It wraps transport failures, service-reported failures and
// authentication-required signals alike.
type Error struct {
	Kind    ErrorKind
	Title   string
	Message string
	Detail  string
	Trace   string // diagnostic only, never shown to the end user
	AuthURL string // re-authentication target, set for KindAuthRequired
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Title
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// AsError converts any error into a *Error, wrapping unrecognized errors
// as KindUnknown with the raw message as detail. A nil error stays nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}
	return &Error{
		Kind:    KindUnknown,
		Title:   "Error",
		Message: "An unexpected error occurred",
		Detail:  err.Error(),
	}
}

// serviceDetail is the structured error body the backend attaches to a
// failed analysis call: {"detail": {"message", "error", "traceback"}}.
// Older paths return detail as a bare string instead.
type serviceDetail struct {
	Message   string `json:"message"`
	Error     string `json:"error"`
	Traceback string `json:"traceback"`
}

// looksLikeAuthFailure reports whether a service error signals missing or
// expired credentials rather than a genuine analysis failure.
func looksLikeAuthFailure(status int, detail string) bool {
	if status == 401 || status == 403 {
		return true
	}
	lower := strings.ToLower(detail)
	for _, marker := range []string{"invalid_grant", "credential", "unauthorized", "api key"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
