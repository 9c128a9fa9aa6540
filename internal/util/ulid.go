package util

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Ids are lexically sortable by creation time.
func NewULID() string {
	return ulid.Make().String()
}

// ULIDTime extracts the creation time encoded in a ULID string
func ULIDTime(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
