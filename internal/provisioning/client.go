package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrAlreadyProvisioned signals the remote "cart already exists" case. A
// saga retry after a timeout hits this when the first attempt actually
// succeeded; it is classified as success, not a failure.
var ErrAlreadyProvisioned = errors.New("cart already exists for this owner")

// RemoteError carries the status and message of a failed cart-service call.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("cart service returned %d: %s", e.StatusCode, e.Message)
}

// RemoteCart is the cart representation returned by the product service.
type RemoteCart struct {
	UID        string          `json:"uid"`
	Owner      string          `json:"owner"`
	Products   json.RawMessage `json:"products"`
	TotalPrice float64         `json:"totalPrice"`
}

// CartClient talks to the product service's cart API. Every call carries a
// bounded timeout; a hung provisioning call must fail, never stay in flight
// forever.
type CartClient struct {
	baseURL string
	client  *http.Client
}

func NewCartClient(baseURL string, timeout time.Duration) *CartClient {
	return &CartClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *CartClient) CreateCart(ctx context.Context, owner, token string) (RemoteCart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/carts/"+owner, nil)
	if err != nil {
		return RemoteCart{}, err
	}
	req.Header.Set(fiberAuthHeader, "Bearer "+token)

	res, err := c.client.Do(req)
	if err != nil {
		return RemoteCart{}, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusCreated:
		var body struct {
			Cart RemoteCart `json:"cart"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			return RemoteCart{}, err
		}
		return body.Cart, nil
	case http.StatusConflict:
		return RemoteCart{}, ErrAlreadyProvisioned
	default:
		return RemoteCart{}, &RemoteError{StatusCode: res.StatusCode, Message: readMessage(res.Body)}
	}
}

func (c *CartClient) GetCart(ctx context.Context, owner string) (RemoteCart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/carts/"+owner, nil)
	if err != nil {
		return RemoteCart{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return RemoteCart{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return RemoteCart{}, &RemoteError{StatusCode: res.StatusCode, Message: readMessage(res.Body)}
	}
	var body struct {
		Cart RemoteCart `json:"cart"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return RemoteCart{}, err
	}
	return body.Cart, nil
}

const fiberAuthHeader = "Authorization"

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return string(raw)
}
