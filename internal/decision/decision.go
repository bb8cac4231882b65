package decision

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"main/internal/model"
	"main/internal/model/enum"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// Pricer supplies a model price for an order's legs. The boolean reports
// availability; an unavailable price forces a no-trade decision.
type Pricer interface {
	Price(ctx context.Context, legs []model.Leg) (float64, bool)
}

// Decision pairs a rendered order summary with the crossing verdict.
type Decision struct {
	Message string
	Trade   bool
}

// Engine renders order summaries and applies the crossing rule: take the
// other side only when the quote is through model value in the maker's
// favor.
type Engine struct {
	pricer Pricer
}

func New(pricer Pricer) *Engine {
	return &Engine{pricer: pricer}
}

// Summarize renders the order and decides whether to cross it. Orders
// whose first leg carries a malformed expiry, or any leg that cannot be
// rendered, return an error: no decision is possible for that order.
func (e *Engine) Summarize(ctx context.Context, order model.Order) (Decision, error) {
	if len(order.Legs) == 0 {
		return Decision{}, errors.Wrapf(exception.ErrDecisionNoLegs, "order: %d", order.OrderID)
	}

	expiry, err := order.Legs[0].Contract.Economics.Expiry.Time()
	if err != nil {
		return Decision{}, errors.Wrapf(err, "parse expiry, order: %d", order.OrderID)
	}

	tokens := make([]string, 0, len(order.Legs))
	for i, leg := range order.Legs {
		token, err := legToken(leg)
		if err != nil {
			return Decision{}, errors.Wrapf(err, "render leg %d, order: %d", i, order.OrderID)
		}
		tokens = append(tokens, token)
	}

	msg := fmt.Sprintf("%s, %s | %s | px: %v",
		order.Descr, expiry.Format("02Jan"), strings.Join(tokens, " "), order.NetPrice)

	modelPrice, ok := e.pricer.Price(ctx, order.Legs)
	if !ok {
		return Decision{Message: msg}, nil
	}
	msg += " | model: " + formatThousands(modelPrice)

	trade := false
	switch {
	case order.NetPrice > 0:
		// the book is bidding for the structure; cross when it bids over model
		trade = order.NetPrice > modelPrice
	case order.NetPrice < 0:
		// the book is offering; cross when it offers under model
		trade = order.NetPrice < modelPrice
	}

	return Decision{Message: msg, Trade: trade}, nil
}

func legToken(leg model.Leg) (string, error) {
	if !leg.Side.IsAvailable() {
		return "", errors.Wrapf(exception.ErrDecisionBadLeg, "side: %d", leg.Side)
	}
	if !leg.Contract.Payoff.IsAvailable() {
		return "", errors.Wrapf(exception.ErrDecisionBadLeg, "payoff: %q", string(leg.Contract.Payoff))
	}

	qty := leg.RemainingQty
	if leg.Side == enum.SideSell {
		qty = -qty
	}
	return fmt.Sprintf("%+.3fx%s@%.0f", qty, leg.Contract.Payoff, leg.Contract.Economics.Strike), nil
}

// formatThousands renders a price with two decimals and comma separators,
// matching the desk's summary line convention.
func formatThousands(v float64) string {
	raw := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}

	dot := strings.IndexByte(raw, '.')
	whole, frac := raw[:dot], raw[dot:]

	var b strings.Builder
	b.Grow(len(raw) + len(whole)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}
	b.WriteString(frac)
	return b.String()
}
