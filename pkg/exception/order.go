package exception

import "errors"

var (
	ErrOrderNilSender      = errors.New("order: nil sender")
	ErrOrderEmptyLegs      = errors.New("order: empty legs")
	ErrOrderRequestNotSent = errors.New("order: request did not send")
)
