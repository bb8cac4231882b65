package protocol

import "main/internal/model/enum"

// Envelope wraps every exchange REST response body.
type Envelope[T any] struct {
	Result  string `json:"result"`
	Details string `json:"details"`
	Payload T      `json:"payload"`
}

// OrderLeg is one (contract, side, quantity) tuple of an order-entry request.
type OrderLeg struct {
	ContractID int64     `json:"contractId"`
	Side       enum.Side `json:"side"`
	Quantity   float64   `json:"quantity"`
}

type newOrderRequest struct {
	Legs  []OrderLeg `json:"legs"`
	Price float64    `json:"price"`
}

// Ack is the exchange's submission acknowledgment. It is logged by the
// caller, never interpreted.
type Ack struct {
	Result  string `json:"result"`
	Details string `json:"details"`
	OrderID int64  `json:"orderId"`
}
