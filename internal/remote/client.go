// Package remote talks to a menu list store over HTTP.
//
// The protocol selects the operation with an "action" query parameter:
// GET ?action=list returns the records, POST ?action=create|update|delete|like
// carries a JSON body. Response bodies of mutations are not relied on.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

const (
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLike   = "like"
)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// StatusError is a non-2xx answer from the store. It matches
// store.ErrUnavailable under errors.Is.
type StatusError struct {
	Action string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: http status %d", e.Action, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool { return target == store.ErrUnavailable }

// CreateRequest is the body of a create call. Only the name is sent.
type CreateRequest struct {
	Name string `json:"name"`
}

// UpdateRequest is the body of an update call. Likes are never sent.
type UpdateRequest struct {
	ID   model.ID `json:"id"`
	Name string   `json:"name"`
}

// IDRequest is the body of delete and like calls.
type IDRequest struct {
	ID model.ID `json:"id"`
}

type Client struct {
	endpoint *url.URL
	c        *http.Client
}

var _ store.Store = (*Client)(nil)

// NewClient returns a client for the store at endpoint. A nil http.Client
// means http.DefaultClient.
func NewClient(c *http.Client, endpoint string) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: missing host", endpoint)
	}
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{endpoint: u, c: c}, nil
}

func (c *Client) Endpoint() string { return c.endpoint.String() }

func (c *Client) actionURL(action string) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()
	return u.String()
}

// do sends one call and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, action string, req any) ([]byte, error) {
	method := http.MethodGet
	var body io.Reader
	if req != nil {
		method = http.MethodPost
		buf, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", action, err)
		}
		body = bytes.NewReader(buf)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, c.actionURL(action), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	hreq.Header.Set("Accept", "application/json")
	if req != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	hresp, err := c.c.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, action, store.ErrUnavailable, err)
	}
	defer hresp.Body.Close()

	respBuf, err := io.ReadAll(io.LimitReader(hresp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w: %w", action, store.ErrUnavailable, err)
	}
	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		return nil, &StatusError{Action: action, Code: hresp.StatusCode, Body: errorBody(respBuf)}
	}
	return respBuf, nil
}

// errorBody pulls a short message out of a failed response.
func errorBody(b []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	b, err := c.do(ctx, ActionList, nil)
	if err != nil {
		return nil, err
	}
	var recs []model.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ActionList, store.ErrMalformed, err)
	}
	if recs == nil {
		return nil, fmt.Errorf("%s: %w: null body", ActionList, store.ErrMalformed)
	}
	return recs, nil
}

// Create sends the name only. The returned record is zero when the
// response does not decode as one.
func (c *Client) Create(ctx context.Context, name string) (model.Record, error) {
	b, err := c.do(ctx, ActionCreate, CreateRequest{Name: name})
	if err != nil {
		return model.Record{}, err
	}
	var r model.Record
	if err := json.Unmarshal(b, &r); err != nil {
		return model.Record{}, nil
	}
	return r, nil
}

func (c *Client) Update(ctx context.Context, id model.ID, name string) error {
	_, err := c.do(ctx, ActionUpdate, UpdateRequest{ID: id, Name: name})
	return err
}

func (c *Client) Delete(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, ActionDelete, IDRequest{ID: id})
	return err
}

func (c *Client) Like(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, ActionLike, IDRequest{ID: id})
	return err
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
