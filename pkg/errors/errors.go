package errors

import "errors"

// ErrInvalidState stored data violates an invariant the schema is supposed
// to guarantee (e.g. an unknown rotation duration). It signals corruption,
// not bad input.
var ErrInvalidState = errors.New("invalid state")
