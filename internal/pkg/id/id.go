package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. Every application error mints one, so ids
// are unique per failure and sortable by occurrence time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
