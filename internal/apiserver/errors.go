package apiserver

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when the server answers without the requested object.
var ErrNotFound = errors.New("not found")

// RemoteError is a call the server rejected.
type RemoteError struct {
	Method  string
	Code    codes.Code
	Message string
}

// Error returns the server's message unchanged.
func (e *RemoteError) Error() string {
	return e.Message
}

func remoteError(method string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	return &RemoteError{Method: method, Code: st.Code(), Message: st.Message()}
}
