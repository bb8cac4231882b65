package exception

import "errors"

var (
	ErrAuthInvalidKey     = errors.New("auth: invalid rsa private key")
	ErrAuthUnsupportedKey = errors.New("auth: unsupported private key type")
	ErrAuthRejected       = errors.New("auth: login rejected")
)
