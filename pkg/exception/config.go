package exception

import "errors"

var (
	ErrConfigMissingAddress = errors.New("config: ETH_ADDRESS is not set")
	ErrConfigMissingKey     = errors.New("config: RSA_KEY is not set")
	ErrConfigBadHouseIDs    = errors.New("config: HOUSE_CLIENT_IDS is malformed")
)
