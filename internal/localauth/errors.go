package localauth

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider is returned by New for any provider other than aws.
	ErrUnsupportedProvider = errors.New("localauth: only the aws provider is supported")
	// ErrInvalidContext is returned by New when service name or stage is empty.
	ErrInvalidContext = errors.New("localauth: deployment context requires service name and stage")
	// ErrMissingName means an object shorthand carried no name.
	ErrMissingName = errors.New("localauth: local authorizer requires a name")
	// ErrInvalidName means the name field was not a string.
	ErrInvalidName = errors.New("localauth: local authorizer name must be a string")
	// ErrInvalidBinding means the shorthand was neither a string nor an object.
	ErrInvalidBinding = errors.New("localauth: local authorizer must be a string or an object")
	// ErrInvalidFunctions is returned by Apply for a nil function collection.
	ErrInvalidFunctions = errors.New("localauth: malformed function collection")
)

// RouteError locates a failure at a function's event.
type RouteError struct {
	Function string
	Event    int
	Err      error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("function %q event #%d: %v", e.Function, e.Event, e.Err)
}

func (e *RouteError) Unwrap() error { return e.Err }
