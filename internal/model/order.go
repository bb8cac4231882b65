package model

import "main/internal/model/enum"

// Leg is one constituent contract position within a multi-leg order.
type Leg struct {
	Contract     Contract  `json:"contractDto"`
	Side         enum.Side `json:"side"`
	RemainingQty float64   `json:"remainingQty"`
	OriginalQty  float64   `json:"originalQty"`
}

// SignedPosition is the original quantity signed by side, the shape the
// valuation service expects.
func (l Leg) SignedPosition() float64 {
	if l.Side == enum.SideSell {
		return -l.OriginalQty
	}
	return l.OriginalQty
}

// Order is a resting multi-leg order. A positive net price quotes a BUY
// of the whole structure.
type Order struct {
	OrderID  int64   `json:"orderId"`
	ClientID int64   `json:"clientId"`
	NetPrice float64 `json:"netPrice"`
	Descr    string  `json:"orderDescr"`
	Legs     []Leg   `json:"details"`
}
