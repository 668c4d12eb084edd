package directory

import (
	"errors"
	"fmt"
)

// RemoteFetchError reports a non-2xx answer or an unusable body from the
// clinic directory API.
type RemoteFetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteFetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		return fmt.Sprintf("directory: %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("directory: %s: status %d: %s", e.Op, e.Status, msg)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by a RemoteFetchError, or 0.
func StatusOf(err error) int {
	var rf *RemoteFetchError
	if errors.As(err, &rf) {
		return rf.Status
	}
	return 0
}
