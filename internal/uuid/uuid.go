package uuid

import (
	"errors"
	"fmt"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned when a parameter is not a UUID.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

// UUID wraps google/uuid so that it can be bound from URI and query
// parameters by gin.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler. An empty
// parameter binds to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalid, p)
	}

	*u = UUID{parsed}
	return nil
}
