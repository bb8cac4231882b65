package pricer

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

const (
	_calcBaseUrlCanary = "https://app.canary.ithacanoemon.tech/api/calc"

	tradePricerPath = "/trade_pricer"

	requestTimeout = 15 * time.Second
)

// Client asks the calc server for a model price. The batch interface is
// always used in single-case mode with a synthetic case id of zero.
type Client struct {
	client  *http.Client
	baseURL string
	metrics *obs.Metrics
}

func NewClient(client *http.Client, baseURL string, metrics *obs.Metrics) *Client {
	if baseURL == "" {
		baseURL = _calcBaseUrlCanary
	}
	return &Client{
		client:  client,
		baseURL: baseURL,
		metrics: metrics,
	}
}

type pricingLeg struct {
	CurrencyPair string            `json:"currencyPair"`
	Payoff       enum.Payoff       `json:"payoff"`
	Expiry       model.ExpiryStamp `json:"expiry"`
	Strike       int64             `json:"strike"`
	Position     float64           `json:"position"`
}

type pricingCase struct {
	OrderID int64        `json:"orderId"`
	Details []pricingLeg `json:"details"`
}

type pricingResult struct {
	OrderID int64    `json:"orderId"`
	Price   *float64 `json:"price"`
}

// Price values the legs as one pricing case. It degrades to (0, false)
// on any transport, status or body failure: valuation unavailability must
// never stop the pipeline, it only forces a no-trade decision.
func (c *Client) Price(ctx context.Context, legs []model.Leg) (float64, bool) {
	cases := []pricingCase{{OrderID: 0, Details: buildLegs(legs)}}

	payload, err := sonic.ConfigFastest.Marshal(cases)
	if err != nil {
		return c.miss(errors.Wrap(err, "marshal pricing request"))
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tradePricerPath, bytes.NewReader(payload))
	if err != nil {
		return c.miss(errors.Wrap(err, "build pricing request"))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.miss(errors.Wrap(err, "request calc server"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.miss(errors.Wrapf(exception.ErrPricingStatus, "status: %d", resp.StatusCode))
	}

	var results []pricingResult
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&results); err != nil {
		return c.miss(errors.Wrap(err, "decode pricing response"))
	}
	if len(results) == 0 {
		return c.miss(exception.ErrPricingEmptyResponse)
	}
	if results[0].Price == nil {
		return c.miss(exception.ErrPricingMissingPrice)
	}

	return *results[0].Price, true
}

func buildLegs(legs []model.Leg) []pricingLeg {
	out := make([]pricingLeg, 0, len(legs))
	for _, leg := range legs {
		out = append(out, pricingLeg{
			CurrencyPair: leg.Contract.Economics.CurrencyPair,
			Payoff:       leg.Contract.Payoff,
			Expiry:       leg.Contract.Economics.Expiry,
			Strike:       int64(leg.Contract.Economics.Strike),
			Position:     leg.SignedPosition(),
		})
	}
	return out
}

func (c *Client) miss(err error) (float64, bool) {
	c.metrics.IncPricingMiss()
	logs.Errorf("model price unavailable, err: %+v", err)
	return 0, false
}
