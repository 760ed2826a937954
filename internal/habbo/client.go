// Package habbo looks up public avatar profiles on the Habbo API. The
// motto field doubles as the portal's out-of-band proof-of-control channel:
// staff temporarily publish a server-issued code there.
package habbo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/youiz/dri-portal/internal/logging"
)

// Profile is the subset of the public user payload the portal cares about.
type Profile struct {
	Name  string `json:"name"`
	Motto string `json:"motto"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger
}

func NewClient(baseURL string, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// FetchProfile looks up a profile by nickname. Any non-success response or
// transport failure is swallowed and reported as nil: callers cannot
// distinguish "user doesn't exist" from "API down", matching the contract
// the rest of the handshake is built on.
func (c *Client) FetchProfile(ctx context.Context, nick string) *Profile {
	u := fmt.Sprintf("%s/api/public/users?name=%s", c.baseURL, url.QueryEscape(nick))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.log.Warn(ctx, "habbo profile request build failed", "nick", nick, "error", err)
		return nil
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "habbo profile lookup failed", "nick", nick, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(ctx, "habbo profile lookup non-200", "nick", nick, "status", resp.StatusCode)
		return nil
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		c.log.Warn(ctx, "habbo profile decode failed", "nick", nick, "error", err)
		return nil
	}
	return &profile
}

// VerifyCodeInMotto reports whether code appears as a literal,
// case-sensitive substring of the profile's motto. A missing profile
// verifies nothing.
func (c *Client) VerifyCodeInMotto(ctx context.Context, nick, code string) bool {
	profile := c.FetchProfile(ctx, nick)
	if profile == nil {
		return false
	}
	c.log.Debug(ctx, "checking motto", "nick", nick, "motto", profile.Motto, "code", code)
	return strings.Contains(profile.Motto, code)
}
