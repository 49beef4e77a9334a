package injector

import (
	"errors"
	"fmt"
)

// ErrInvalidParent is returned by SetParentInjector when the value is neither
// an *Injector nor nil.
var ErrInvalidParent = errors.New("Cannot set the parentInjector because it is not an injector")

// MappingNotFoundError is returned when no node in the chain holds a key.
type MappingNotFoundError struct {
	Key Key
}

func (e *MappingNotFoundError) Error() string {
	return `Cannot return instance "` + e.Key.String() + `" because no mapping has been found`
}

// TypeMismatchError is returned when a resolved value cannot be stored where it
// was requested: a struct field of another type, or a Resolve[T] call.
type TypeMismatchError struct {
	Key    Key
	Target string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("injector: %s resolved to %s, %s needs %s", e.Key, e.Got, e.Target, e.Want)
}

// PostConstructError is returned when a declared post-construct callback does
// not exist on the target or has the wrong signature.
type PostConstructError struct {
	Method string
	Reason string
}

func (e *PostConstructError) Error() string {
	return fmt.Sprintf("injector: post construct %q: %s", e.Method, e.Reason)
}

// IsMappingNotFound reports whether err is, or wraps, a MappingNotFoundError.
func IsMappingNotFound(err error) bool {
	var nf *MappingNotFoundError
	return errors.As(err, &nf)
}
