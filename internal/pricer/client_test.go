package pricer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingLegs() []model.Leg {
	return []model.Leg{
		{
			Contract: model.Contract{
				Payoff: enum.PayoffCall,
				Economics: model.Economics{
					CurrencyPair: "WETH/USDC",
					Expiry:       240628080,
					Strike:       3500,
				},
			},
			Side:        enum.SideBuy,
			OriginalQty: 2,
		},
		{
			Contract: model.Contract{
				Payoff: enum.PayoffPut,
				Economics: model.Economics{
					CurrencyPair: "WETH/USDC",
					Expiry:       240628080,
					Strike:       3300,
				},
			},
			Side:        enum.SideSell,
			OriginalQty: 1.5,
		},
	}
}

func TestPriceSingleCaseRequest(t *testing.T) {
	var captured []pricingCase
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, tradePricerPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"orderId": 0, "price": 95.25}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, obs.NewMetrics())
	price, ok := client.Price(context.Background(), pricingLegs())

	require.True(t, ok)
	assert.Equal(t, 95.25, price)

	require.Len(t, captured, 1)
	require.EqualValues(t, 0, captured[0].OrderID)
	require.Len(t, captured[0].Details, 2)
	assert.Equal(t, 2.0, captured[0].Details[0].Position)
	assert.Equal(t, -1.5, captured[0].Details[1].Position)
	assert.EqualValues(t, 3500, captured[0].Details[0].Strike)
	assert.EqualValues(t, 240628080, captured[0].Details[0].Expiry)
}

func TestPriceUnavailable(t *testing.T) {
	testCases := []struct {
		desc    string
		handler http.HandlerFunc
	}{
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not": "an array"`))
			},
		},
		{
			"empty result array",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			"missing price field",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"orderId": 0}]`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			metrics := obs.NewMetrics()
			client := NewClient(server.Client(), server.URL, metrics)

			price, ok := client.Price(context.Background(), pricingLegs())
			assert.False(t, ok)
			assert.Zero(t, price)
			assert.EqualValues(t, 1, metrics.Snapshot().PricingMisses)
		})
	}
}

func TestPriceTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(http.DefaultClient, server.URL, obs.NewMetrics())
	_, ok := client.Price(context.Background(), pricingLegs())
	assert.False(t, ok)
}
