package exception

import "errors"

var (
	ErrExpiryMalformed = errors.New("model: malformed expiry stamp")
	ErrSideUnavailable = errors.New("model: side is not available")
)
