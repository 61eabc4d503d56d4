package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/okian/herodex/internal/domain/hero"
)

// requestIDHeader matches the header the API echoes.
const requestIDHeader = "X-Request-ID"

// Client talks to a running herodex service.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rc.R().SetContext(ctx).SetHeader(requestIDHeader, uuid.NewString())
}

// Health checks GET /healthz and returns the reported catalog size.
func (c *Client) Health(ctx context.Context) (int, error) {
	var body struct {
		Status string `json:"status"`
		Heroes int    `json:"heroes"`
	}
	resp, err := c.request(ctx).Get("/healthz")
	if err != nil {
		return 0, fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || json.Unmarshal(resp.Body(), &body) != nil || body.Status != "ok" {
		return 0, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode())
	}
	return body.Heroes, nil
}

// Heroes fetches the full catalog.
func (c *Client) Heroes(ctx context.Context) ([]hero.Entity, error) {
	var heroes []hero.Entity
	resp, err := c.request(ctx).Get("/api/heroes")
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: list heroes returned %d", ErrUnexpected, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), &heroes); err != nil {
		return nil, fmt.Errorf("%w: decode heroes: %w", ErrUnexpected, err)
	}
	return heroes, nil
}

// CompareRaw compares two raw id strings and returns the status code with the
// decoded success or error body.
func (c *Client) CompareRaw(ctx context.Context, id1, id2 string) (int, Comparison, ErrorBody, error) {
	resp, err := c.request(ctx).
		SetQueryParam("id1", id1).
		SetQueryParam("id2", id2).
		Get("/api/heroes/compare")
	if err != nil {
		return 0, Comparison{}, ErrorBody{}, fmt.Errorf("compare %s/%s: %w", id1, id2, err)
	}

	var (
		ok  Comparison
		bad ErrorBody
	)
	if resp.StatusCode() == http.StatusOK {
		err = json.Unmarshal(resp.Body(), &ok)
	} else {
		err = json.Unmarshal(resp.Body(), &bad)
	}
	if err != nil {
		return resp.StatusCode(), ok, bad, fmt.Errorf("%w: decode compare %s/%s: %w", ErrUnexpected, id1, id2, err)
	}
	return resp.StatusCode(), ok, bad, nil
}

// Compare compares two heroes and fails on any non-200 answer.
func (c *Client) Compare(ctx context.Context, id1, id2 hero.ID) (Comparison, error) {
	status, res, bad, err := c.CompareRaw(ctx, id1.String(), id2.String())
	if err != nil {
		return Comparison{}, err
	}
	if status != http.StatusOK {
		return Comparison{}, fmt.Errorf("%w: compare %d/%d returned %d %s", ErrUnexpected, id1, id2, status, bad.Message)
	}
	return res, nil
}

// unknownID returns an id guaranteed to be absent from heroes.
func unknownID(heroes []hero.Entity) string {
	maxID := hero.ID(0)
	for _, h := range heroes {
		if h.ID > maxID {
			maxID = h.ID
		}
	}
	return strconv.Itoa(int(maxID) + unknownIDOffset)
}
