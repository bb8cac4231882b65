package decision

import (
	"context"
	"errors"
	"testing"

	"main/internal/model"
	"main/internal/model/enum"
	"main/pkg/exception"
)

type fakePricer struct {
	price float64
	ok    bool
	legs  []model.Leg
}

func (p *fakePricer) Price(_ context.Context, legs []model.Leg) (float64, bool) {
	p.legs = legs
	return p.price, p.ok
}

func callLeg(side enum.Side, remaining float64, strike float64) model.Leg {
	return model.Leg{
		Contract: model.Contract{
			ContractID: 4001,
			Payoff:     enum.PayoffCall,
			Economics: model.Economics{
				CurrencyPair: "WETH/USDC",
				Expiry:       240628080,
				Strike:       strike,
			},
		},
		Side:         side,
		RemainingQty: remaining,
		OriginalQty:  remaining,
	}
}

func spreadOrder(netPrice float64) model.Order {
	return model.Order{
		OrderID:  91,
		ClientID: 7,
		NetPrice: netPrice,
		Descr:    "Call Spread",
		Legs: []model.Leg{
			callLeg(enum.SideBuy, 1, 3500),
			callLeg(enum.SideSell, 1, 3700),
		},
	}
}

func TestSummarizeTradeRule(t *testing.T) {
	testCases := []struct {
		desc     string
		netPrice float64
		model    float64
		want     bool
	}{
		{"buy over model crosses", 100, 95, true},
		{"buy under model passes", 100, 105, false},
		{"buy at model passes", 100, 100, false},
		{"sell under model crosses", -100, -95, true},
		{"sell over model passes", -100, -105, false},
		{"zero net price passes", 0, 5, false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			engine := New(&fakePricer{price: tc.model, ok: true})
			dec, err := engine.Summarize(context.Background(), spreadOrder(tc.netPrice))
			if err != nil {
				t.Fatalf("summarize: %v", err)
			}
			if dec.Trade != tc.want {
				t.Fatalf("trade verdict mismatch: got %v want %v", dec.Trade, tc.want)
			}
		})
	}
}

func TestSummarizeMessage(t *testing.T) {
	engine := New(&fakePricer{price: 1234567.891, ok: true})
	dec, err := engine.Summarize(context.Background(), spreadOrder(100))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	want := "Call Spread, 28Jun | +1.000xCall@3500 -1.000xCall@3700 | px: 100 | model: 1,234,567.89"
	if dec.Message != want {
		t.Fatalf("message mismatch:\ngot  %q\nwant %q", dec.Message, want)
	}
}

func TestSummarizeWithoutModelPrice(t *testing.T) {
	engine := New(&fakePricer{ok: false})
	dec, err := engine.Summarize(context.Background(), spreadOrder(100))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if dec.Trade {
		t.Fatal("trade must never be favorable without a model price")
	}
	want := "Call Spread, 28Jun | +1.000xCall@3500 -1.000xCall@3700 | px: 100"
	if dec.Message != want {
		t.Fatalf("message mismatch:\ngot  %q\nwant %q", dec.Message, want)
	}
}

func TestSummarizeMalformedExpiry(t *testing.T) {
	order := spreadOrder(100)
	order.Legs[0].Contract.Economics.Expiry = 123

	engine := New(&fakePricer{price: 95, ok: true})
	if _, err := engine.Summarize(context.Background(), order); !errors.Is(err, exception.ErrExpiryMalformed) {
		t.Fatalf("expected ErrExpiryMalformed, got %v", err)
	}
}

func TestSummarizeBadLeg(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(*model.Order)
	}{
		{"unknown side", func(o *model.Order) { o.Legs[1].Side = 0 }},
		{"unknown payoff", func(o *model.Order) { o.Legs[1].Contract.Payoff = "Straddle" }},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			order := spreadOrder(100)
			tc.mutate(&order)

			engine := New(&fakePricer{price: 95, ok: true})
			if _, err := engine.Summarize(context.Background(), order); !errors.Is(err, exception.ErrDecisionBadLeg) {
				t.Fatalf("expected ErrDecisionBadLeg, got %v", err)
			}
		})
	}
}

func TestSummarizeNoLegs(t *testing.T) {
	engine := New(&fakePricer{price: 95, ok: true})
	if _, err := engine.Summarize(context.Background(), model.Order{OrderID: 1}); !errors.Is(err, exception.ErrDecisionNoLegs) {
		t.Fatalf("expected ErrDecisionNoLegs, got %v", err)
	}
}

func TestFormatThousands(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{95, "95.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-98765.432, "-98,765.43"},
		{0.1, "0.10"},
	}

	for _, tc := range testCases {
		if got := formatThousands(tc.in); got != tc.want {
			t.Fatalf("format %v mismatch: got %q want %q", tc.in, got, tc.want)
		}
	}
}
