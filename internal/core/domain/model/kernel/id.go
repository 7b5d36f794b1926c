package kernel

import (
	"strconv"

	"orders/internal/pkg/errs"
)

// ID is a storage generated numeric identity. The zero value means the
// entity has not been persisted yet.
type ID int64

// NewID wraps a positive identity, typically one received from a client.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return 0, errs.NewValueIsInvalidError("id")
	}
	return ID(value), nil
}

// IsAssigned reports whether storage has issued this identity.
func (id ID) IsAssigned() bool {
	return id > 0
}

// Validate fails for identities that were never assigned.
func (id ID) Validate() error {
	if !id.IsAssigned() {
		return errs.NewValueIsRequiredError("id")
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
