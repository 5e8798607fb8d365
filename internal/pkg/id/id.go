package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string, used as the id for users, products,
// reviews and addresses. ULIDs sort by creation time, so id order
// doubles as insertion order in scans.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
