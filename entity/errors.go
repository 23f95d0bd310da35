package entity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xyzbank/entity-contract-tests/servicedef"
)

// RequestFailed means that the service answered an operation with a non-2xx status.
type RequestFailed struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *RequestFailed) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// MalformedResponse means that a successful response could not be interpreted.
type MalformedResponse struct {
	Operation string
	Body      string
	Err       error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("malformed %s response (%s): %q", e.Operation, e.Err, e.Body)
}

func (e *MalformedResponse) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is the service's signal for an unknown entity ID: a
// RequestFailed with status 500 whose body contains "no rows in result set".
func IsNotFound(err error) bool {
	var rf *RequestFailed
	if !errors.As(err, &rf) {
		return false
	}
	return rf.StatusCode == http.StatusInternalServerError && strings.Contains(rf.Body, servicedef.NotFoundMessage)
}
