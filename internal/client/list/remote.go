package list

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Remote speaks to the server cart endpoints. It must share the session
// store's HTTP client so the credential cookie rides along; without it every
// call fails with ErrUnauthorized.
type Remote struct {
	base *url.URL
	http *http.Client
}

func NewRemote(baseURL string, client *http.Client) (*Remote, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("list: bad base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{base: u, http: client}, nil
}

func (r *Remote) Add(ctx context.Context, e Entry) error {
	_, err := r.call(ctx, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": e.ProductID,
		"price":      e.Price,
		"name":       e.Name,
		"image":      e.Image,
	})
	return err
}

func (r *Remote) Remove(ctx context.Context, productID string) error {
	_, err := r.call(ctx, http.MethodDelete, "/api/cart/items", map[string]any{
		"product_id": productID,
	})
	return err
}

func (r *Remote) SetQuantity(ctx context.Context, productID string, qty int) error {
	_, err := r.call(ctx, http.MethodPatch, "/api/cart/items", map[string]any{
		"product_id": productID,
		"qty":        qty,
	})
	return err
}

func (r *Remote) List(ctx context.Context) ([]Entry, error) {
	body, err := r.call(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		return nil, err
	}
	return body.Cart.Items, nil
}

func (r *Remote) Subtotal(ctx context.Context) (float64, error) {
	body, err := r.call(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		return 0, err
	}
	return body.Cart.Subtotal, nil
}

type cartEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Cart    struct {
		Items    []Entry `json:"items"`
		Subtotal float64 `json:"subtotal"`
	} `json:"cart"`
}

func (r *Remote) call(ctx context.Context, method, path string, payload map[string]any) (*cartEnvelope, error) {
	var rd *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.base.JoinPath(path).String(), rd)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	}

	var out cartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("list: server rejected %s %s: %s", method, path, msg)
	}
	return &out, nil
}
