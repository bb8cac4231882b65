package execution

import (
	"context"
	"errors"
	"testing"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/protocol"
	"main/pkg/exception"
)

type fakeSender struct {
	legs  []protocol.OrderLeg
	price float64
	err   error
	calls int
}

func (s *fakeSender) NewOrder(_ context.Context, legs []protocol.OrderLeg, price float64) (protocol.Ack, error) {
	s.calls++
	s.legs = legs
	s.price = price
	return protocol.Ack{Result: "OK", OrderID: 555}, s.err
}

func acceptedOrder() model.Order {
	return model.Order{
		OrderID:  91,
		NetPrice: 42.5,
		Legs: []model.Leg{
			{
				Contract:     model.Contract{ContractID: 4001},
				Side:         enum.SideBuy,
				RemainingQty: 1.5,
				OriginalQty:  2,
			},
			{
				Contract:     model.Contract{ContractID: 4002},
				Side:         enum.SideSell,
				RemainingQty: 3,
				OriginalQty:  3,
			},
		},
	}
}

func TestTranslateFlipsSidesAndNegatesPrice(t *testing.T) {
	legs, price := Translate(acceptedOrder())

	if price != -42.5 {
		t.Fatalf("price mismatch: got %v want -42.5", price)
	}
	if len(legs) != 2 {
		t.Fatalf("leg count mismatch: got %d want 2", len(legs))
	}
	if legs[0].ContractID != 4001 || legs[0].Side != enum.SideSell || legs[0].Quantity != 1.5 {
		t.Fatalf("first leg mismatch: %+v", legs[0])
	}
	if legs[1].ContractID != 4002 || legs[1].Side != enum.SideBuy || legs[1].Quantity != 3 {
		t.Fatalf("second leg mismatch: %+v", legs[1])
	}
}

func TestTranslateNegativeNetPrice(t *testing.T) {
	order := acceptedOrder()
	order.NetPrice = -10

	if _, price := Translate(order); price != 10 {
		t.Fatalf("price mismatch: got %v want 10", price)
	}
}

func TestExecuteSubmitsTranslatedOrder(t *testing.T) {
	sender := &fakeSender{}
	if err := New(sender).Execute(context.Background(), acceptedOrder()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("send count mismatch: got %d want 1", sender.calls)
	}
	if sender.price != -42.5 {
		t.Fatalf("submitted price mismatch: got %v want -42.5", sender.price)
	}
}

func TestExecuteNilSender(t *testing.T) {
	var translator *Translator
	if err := translator.Execute(context.Background(), acceptedOrder()); !errors.Is(err, exception.ErrOrderNilSender) {
		t.Fatalf("expected nil sender error, got %v", err)
	}
}

func TestExecutePropagatesSendFailure(t *testing.T) {
	wantErr := errors.New("exchange down")
	sender := &fakeSender{err: wantErr}

	if err := New(sender).Execute(context.Background(), acceptedOrder()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}
