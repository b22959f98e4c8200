package document

import (
	"errors"
	"fmt"
)

// ErrNotResizable is returned when a bounds resize targets a connector.
var ErrNotResizable = errors.New("connectors are edited through their control points")

// UnsupportedKindError is returned for kinds the factory does not know.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported element type: %q", e.Kind)
}

// MissingPathError is returned when an image-backed kind has no path.
type MissingPathError struct {
	Kind Kind
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("%s type requires a file path", e.Kind)
}

// ResourceNotFoundError is returned when an image resource cannot be read.
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found %q: %v", e.Path, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// InvalidGeometryError is returned when an entity's geometry breaks a shape
// invariant, such as a connector without exactly four control points.
type InvalidGeometryError struct {
	EntityID string
	Reason   string
}

func (e *InvalidGeometryError) Error() string {
	if e.EntityID == "" {
		return "invalid geometry: " + e.Reason
	}
	return fmt.Sprintf("invalid geometry for %s: %s", e.EntityID, e.Reason)
}
