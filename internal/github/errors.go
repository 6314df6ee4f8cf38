package github

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed GitHub API operation so callers can branch
// on the kind instead of parsing message text.
type ErrorKind string

const (
	// KindMissingCredential means no token was resolvable. Raised before
	// any network call is made.
	KindMissingCredential ErrorKind = "missing_credential"
	// KindNotFoundOrForbidden maps HTTP 404: the resource is absent or the
	// token has no access to the repository.
	KindNotFoundOrForbidden ErrorKind = "not_found_or_forbidden"
	// KindValidationFailed maps HTTP 422: malformed inputs, or the workflow
	// does not accept manual dispatch.
	KindValidationFailed ErrorKind = "validation_failed"
	// KindAuthenticationFailed maps HTTP 401/403: token invalid or missing
	// the required scope.
	KindAuthenticationFailed ErrorKind = "authentication_failed"
	// KindProvider covers any other non-2xx status.
	KindProvider ErrorKind = "provider_error"
	// KindUnexpectedProtocol means a 2xx response that is not the documented
	// shape (the dispatch endpoint has exactly one success shape: 204 with
	// an empty body).
	KindUnexpectedProtocol ErrorKind = "unexpected_protocol"
)

// APIError is the error type for all GitHub API failures.
type APIError struct {
	Kind      ErrorKind
	Status    int    // HTTP status, 0 when no response was received
	Operation string // e.g. "trigger workflow dispatch"
	Message   string // provider-supplied message, when available
}

func (e *APIError) Error() string {
	if e.Message != "" {
		if e.Status != 0 {
			return fmt.Sprintf("%s: %s (HTTP %d)", e.Operation, e.Message, e.Status)
		}
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Operation, e.Status)
	}
	return e.Operation
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// classifyStatus maps a non-2xx HTTP status to an ErrorKind.
func classifyStatus(status int) ErrorKind {
	switch status {
	case 404:
		return KindNotFoundOrForbidden
	case 422:
		return KindValidationFailed
	case 401, 403:
		return KindAuthenticationFailed
	default:
		return KindProvider
	}
}
