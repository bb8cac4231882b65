package exception

import "errors"

var (
	ErrDecisionNoLegs = errors.New("decision: order has no legs")
	ErrDecisionBadLeg = errors.New("decision: leg cannot be rendered")
)
