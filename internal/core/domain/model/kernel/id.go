package kernel

import (
	"fmt"
	"strconv"

	"bakery/internal/pkg/errs"
)

// ID is the storage-assigned identity of an entity. Valid ids are positive;
// the zero value means "not assigned yet".
type ID int64

// NewID validates a raw identifier coming from a request or a store.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identifier, typically from a path or header.
func ParseID(s string) (ID, error) {
	raw, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(raw)
}

// Validate reports whether the id is positive.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

// IsZero reports whether the id was never assigned.
func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID converts a nullable column value into a domain id pointer.
func OptionalID(raw *int64) *ID {
	if raw == nil {
		return nil
	}
	id := ID(*raw)
	return &id
}

// RawID is the inverse of OptionalID.
func RawID(id *ID) *int64 {
	if id == nil {
		return nil
	}
	raw := int64(*id)
	return &raw
}
