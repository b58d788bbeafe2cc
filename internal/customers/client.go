// Package customers talks to the remote customer service being seeded.
package customers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"customer-generator/internal/common/config"
	"customer-generator/internal/common/errors"
	commonhttp "customer-generator/internal/common/http"
)

// Poster is the transport the client needs; *commonhttp.Client satisfies it.
type Poster interface {
	PostJSON(ctx context.Context, target string, body []byte) (*commonhttp.Response, error)
}

// CreateResult is the outcome of a customer creation call.
type CreateResult struct {
	Location   string
	StatusCode int
}

type Client struct {
	http          Poster
	customersURL  *url.URL
	methodsSuffix string
}

// NewClient builds a client for the service described by target.
func NewClient(target config.TargetConfig, poster Poster) (*Client, error) {
	u, err := url.Parse(target.CustomersURL())
	if err != nil {
		return nil, fmt.Errorf("parse customers url: %w", err)
	}
	suffix := target.MethodsSuffix
	if suffix == "" {
		suffix = config.DefaultMethodsSuffix
	}
	return &Client{
		http:          poster,
		customersURL:  u,
		methodsSuffix: "/" + strings.TrimLeft(suffix, "/"),
	}, nil
}

// CustomersURL is the creation endpoint.
func (c *Client) CustomersURL() string {
	return c.customersURL.String()
}

// CreateCustomer posts the creation payload and returns the location of the new customer.
// The status code is reported but not checked; a missing location header is an error.
func (c *Client) CreateCustomer(ctx context.Context, body []byte) (*CreateResult, error) {
	target := c.CustomersURL()

	resp, err := c.http.PostJSON(ctx, target, body)
	if err != nil {
		return nil, err
	}

	values := resp.Header.Values("location")
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, errors.NewLocationHeaderMissingError(target, resp.StatusCode)
	}

	location, err := c.resolve(strings.TrimSpace(values[0]))
	if err != nil {
		return nil, errors.NewRequestBuildFailedError(values[0], err)
	}

	return &CreateResult{
		Location:   location,
		StatusCode: resp.StatusCode,
	}, nil
}

// AddContactMethods posts the contact-methods payload to <location>/methods
// and returns the response status code.
func (c *Client) AddContactMethods(ctx context.Context, location string, body []byte) (int, error) {
	resp, err := c.http.PostJSON(ctx, c.MethodsURL(location), body)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

// MethodsURL appends the methods suffix to a customer location.
func (c *Client) MethodsURL(location string) string {
	return strings.TrimRight(location, "/") + c.methodsSuffix
}

// resolve makes a relative location absolute against the customers endpoint.
func (c *Client) resolve(location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return location, nil
	}
	return c.customersURL.ResolveReference(ref).String(), nil
}
