// Package tablestore implements the row-level client for the hosted
// table-store gateway (PostgREST dialect): equality/range-filtered selects,
// inserts and updates over plain HTTP. Repositories build on it; nothing
// here knows about users, codes or sessions.
package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/logging"
)

// Filter is a single column predicate in the gateway's query syntax,
// e.g. nick=eq.youiz or expira_em=gt.2026-01-01T00:00:00Z.
type Filter struct {
	column string
	op     string
	value  string
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{column: column, op: "eq", value: formatValue(value)}
}

// Gt builds a greater-than filter (used for expiry cutoffs).
func Gt(column string, value any) Filter {
	return Filter{column: column, op: "gt", value: formatValue(value)}
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case time.Time:
		return value.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Query describes an ordered, limited, filtered select.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Client talks to one gateway with one service key. Safe for concurrent
// use; the zero value is not usable, construct with New.
type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
	log     logging.Logger
}

func New(baseURL, key string, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		key:     key,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (c *Client) newRequest(ctx context.Context, method, table string, query url.Values, body io.Reader) (*http.Request, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway response read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %s: %s", resp.Status, data)
	}
	return data, nil
}

func queryValues(q Query) url.Values {
	values := url.Values{}
	values.Set("select", "*")
	for _, f := range q.Filters {
		values.Set(f.column, f.op+"."+f.value)
	}
	if q.OrderBy != "" {
		order := q.OrderBy
		if q.Descending {
			order += ".desc"
		}
		values.Set("order", order)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// Select runs a filtered select and decodes the row set into dst, which
// must be a pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q Query, dst any) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, queryValues(q), nil)
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// SelectOne runs an at-most-one-row select and decodes it into dst.
// Returns common.ErrNotFound when no row matches.
func (c *Client) SelectOne(ctx context.Context, table string, dst any, filters ...Filter) error {
	var raw []json.RawMessage
	if err := c.Select(ctx, table, Query{Filters: filters, Limit: 1}, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return common.ErrNotFound
	}
	return json.Unmarshal(raw[0], dst)
}

// Insert adds a single row.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, table, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")
	_, err = c.do(req)
	return err
}

// Update patches every row matching the filters with the non-zero fields
// of patch (a struct with column json tags, or a map).
func (c *Client) Update(ctx context.Context, table string, patch any, filters ...Filter) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	values := queryValues(Query{Filters: filters})
	values.Del("select")
	req, err := c.newRequest(ctx, http.MethodPatch, table, values, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")
	_, err = c.do(req)
	return err
}
