package util

import "github.com/oklog/ulid/v2"

// NewULID generates a new ULID string. ulid.Make uses crypto/rand
// entropy, which is safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}
