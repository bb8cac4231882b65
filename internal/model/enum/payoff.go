package enum

// Payoff is the exchange's payoff kind, carried verbatim from the wire.
type Payoff string

const (
	PayoffCall       Payoff = "Call"
	PayoffPut        Payoff = "Put"
	PayoffBinaryCall Payoff = "BinaryCall"
	PayoffBinaryPut  Payoff = "BinaryPut"
	PayoffForward    Payoff = "Forward"
)

func (p Payoff) IsAvailable() bool {
	switch p {
	case PayoffCall, PayoffPut, PayoffBinaryCall, PayoffBinaryPut, PayoffForward:
		return true
	default:
		return false
	}
}
