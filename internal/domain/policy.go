package domain

import "fmt"

// FailurePolicy decides what happens after a row fails to dispatch.
type FailurePolicy string

// Failure policies.
const (
	PolicyAbort    FailurePolicy = "abort"    // stop at the first failed row
	PolicyContinue FailurePolicy = "continue" // report the row and go on
)

// ParseFailurePolicy parses a policy name. Empty means PolicyAbort.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicyContinue:
		return PolicyContinue, nil
	}
	return "", fmt.Errorf("%w: %q (expected abort or continue)", ErrInvalidPolicy, s)
}

// Backend selects how issues are created.
type Backend string

// Backends.
const (
	BackendGH  Backend = "gh"  // shell out to the gh CLI
	BackendAPI Backend = "api" // call the GitHub REST API
)

// ParseBackend parses a backend name. Empty means BackendGH.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendGH:
		return BackendGH, nil
	case BackendAPI:
		return BackendAPI, nil
	}
	return "", fmt.Errorf("%w: %q (expected gh or api)", ErrInvalidBackend, s)
}
