package protocol

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"main/internal/model"
	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

const (
	_ithacaBaseUrl       = "https://app.ithacanoemon.tech/api/v1"
	_ithacaBaseUrlCanary = "https://app.canary.ithacanoemon.tech/api/v1"

	contractListPath = "/clientapi/contractList"
	orderbookPath    = "/clientapi/orderbook"
	newOrderPath     = "/clientapi/newOrder"

	requestTimeout = 15 * time.Second
)

// TokenSource supplies a fresh session token for authorized calls.
type TokenSource interface {
	Login(ctx context.Context) error
	Token() string
}

// Client talks to the exchange REST protocol: catalog, order book and
// order entry. Authorized calls refresh the session first, the way the
// exchange expects long-lived clients to behave.
type Client struct {
	client  *http.Client
	baseURL string
	session TokenSource
}

func NewClient(client *http.Client, baseURL string, session TokenSource) *Client {
	if baseURL == "" {
		baseURL = _ithacaBaseUrlCanary
	}
	return &Client{
		client:  client,
		baseURL: baseURL,
		session: session,
	}
}

// ContractList fetches the full contract catalog, fresh on every call.
func (c *Client) ContractList(ctx context.Context) ([]model.Contract, error) {
	var data Envelope[[]model.Contract]
	if err := c.get(ctx, contractListPath, &data); err != nil {
		return nil, errors.Wrap(err, "fetch contract list")
	}
	return data.Payload, nil
}

// Orderbook fetches the full resting book. Orders whose client id matches
// the exclude predicate are dropped before the book is returned, so house
// quotes can never be mistaken for customer flow.
func (c *Client) Orderbook(ctx context.Context, exclude func(clientID int64) bool) ([]model.Order, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}

	var data Envelope[[]model.Order]
	if err := c.get(ctx, orderbookPath, &data); err != nil {
		return nil, errors.Wrap(err, "fetch orderbook")
	}
	if exclude == nil {
		return data.Payload, nil
	}

	orders := make([]model.Order, 0, len(data.Payload))
	for _, order := range data.Payload {
		if exclude(order.ClientID) {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// NewOrder submits an order-entry instruction and returns the raw
// acknowledgment.
func (c *Client) NewOrder(ctx context.Context, legs []OrderLeg, price float64) (Ack, error) {
	if len(legs) == 0 {
		return Ack{}, exception.ErrOrderEmptyLegs
	}
	if err := c.login(ctx); err != nil {
		return Ack{}, err
	}

	var data Envelope[Ack]
	if err := c.post(ctx, newOrderPath, newOrderRequest{Legs: legs, Price: price}, &data); err != nil {
		return Ack{}, errors.Wrap(err, "submit order")
	}
	return data.Payload, nil
}

func (c *Client) login(ctx context.Context) error {
	if c.session == nil {
		return nil
	}
	if err := c.session.Login(ctx); err != nil {
		return errors.Wrap(err, "session login")
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := sonic.ConfigFastest.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request body")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(exception.ErrProtocolStatus, "status: %d, path: %s", resp.StatusCode, req.URL.Path)
	}

	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}
