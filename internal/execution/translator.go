package execution

import (
	"context"

	"main/internal/model"
	"main/internal/protocol"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Sender submits a translated instruction to the exchange order entry.
type Sender interface {
	NewOrder(ctx context.Context, legs []protocol.OrderLeg, price float64) (protocol.Ack, error)
}

// Translator crosses an accepted order: every leg flipped to the
// opposite side at its remaining quantity, priced at the negated net
// price. The maker steps in front of the resting order.
type Translator struct {
	sender Sender
}

func New(sender Sender) *Translator {
	return &Translator{sender: sender}
}

// Translate builds the opposite-side instruction without submitting it.
func Translate(order model.Order) ([]protocol.OrderLeg, float64) {
	legs := make([]protocol.OrderLeg, 0, len(order.Legs))
	for _, leg := range order.Legs {
		legs = append(legs, protocol.OrderLeg{
			ContractID: leg.Contract.ContractID,
			Side:       leg.Side.Flip(),
			Quantity:   leg.RemainingQty,
		})
	}
	return legs, -order.NetPrice
}

// Execute submits the opposite-side instruction for an accepted order.
// The acknowledgment is logged verbatim; there is no retry.
func (t *Translator) Execute(ctx context.Context, order model.Order) error {
	if t == nil || t.sender == nil {
		return exception.ErrOrderNilSender
	}

	legs, price := Translate(order)
	ack, err := t.sender.NewOrder(ctx, legs, price)
	if err != nil {
		return errors.Wrapf(err, "send order, order: %d", order.OrderID)
	}

	logs.Infof("order sent: %+v", ack)
	return nil
}
