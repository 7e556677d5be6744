package search

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrRequest = errors.New("search request failed")

// RequestError reports a transport, HTTP status or decoding failure
// that occurred while executing a search.
type RequestError struct {
	Query Query
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRequest.Error(), e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

func NewRequestError(query Query, err error) *RequestError {
	return &RequestError{
		Query: query,
		Err:   err,
	}
}
