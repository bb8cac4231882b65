package exception

import "errors"

var (
	ErrProtocolStatus       = errors.New("protocol: unexpected response status")
	ErrProtocolEmptyPayload = errors.New("protocol: empty response payload")
)
