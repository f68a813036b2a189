package domain

import "errors"

// ErrNotFound signals a missing record. Repositories wrap it so the service
// can distinguish an absent employee (a domain failure, returned as data) from
// an infrastructure fault (propagated to the exception normalizer).
var ErrNotFound = errors.New("not found")
