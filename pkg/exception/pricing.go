package exception

import "errors"

var (
	ErrPricingStatus        = errors.New("pricing: calc server status is not ok")
	ErrPricingEmptyResponse = errors.New("pricing: empty response")
	ErrPricingMissingPrice  = errors.New("pricing: response is missing price")
)
