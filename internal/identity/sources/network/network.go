// Package network reads the node and staking provider registries of the
// chain through its gateway and public API.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/platform/httpclient"
)

const (
	gatewaySource = "gateway"
	apiSource     = "api"

	// allNodesPageSize covers the whole registry in one page.
	allNodesPageSize = 10000
)

// Client implements ports.NodeSource and ports.ProviderSource.
type Client struct {
	gatewayURL string
	apiURL     string
	http       *httpclient.Client
}

func New(gatewayURL, apiURL string, opts ...httpclient.Option) *Client {
	return &Client{
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		apiURL:     strings.TrimRight(apiURL, "/"),
		http:       httpclient.New(opts...),
	}
}

type heartbeatResponse struct {
	Data struct {
		Heartbeats []struct {
			PublicKey string `json:"publicKey"`
			Identity  string `json:"identity"`
		} `json:"heartbeats"`
	} `json:"data"`
	Error string `json:"error"`
}

// ListHeartbeats returns the nodes currently reporting heartbeats.
func (c *Client) ListHeartbeats(ctx context.Context) ([]models.NodeEntry, error) {
	body, err := c.get(ctx, gatewaySource, c.gatewayURL+"/node/heartbeatstatus")
	if err != nil {
		return nil, err
	}
	var r heartbeatResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, ports.ParseFailure(gatewaySource, "decode heartbeats", err)
	}
	if r.Error != "" {
		return nil, ports.Unavailable(gatewaySource, r.Error, nil)
	}
	out := make([]models.NodeEntry, 0, len(r.Data.Heartbeats))
	for _, hb := range r.Data.Heartbeats {
		out = append(out, models.NodeEntry{Key: models.Key(hb.PublicKey), Identity: models.Identity(hb.Identity)})
	}
	return out, nil
}

type nodeRow struct {
	BLS      string `json:"bls"`
	Identity string `json:"identity"`
}

// ListAll returns every registered node.
func (c *Client) ListAll(ctx context.Context) ([]models.NodeEntry, error) {
	endpoint := fmt.Sprintf("%s/nodes?size=%d&fields=bls,identity", c.apiURL, allNodesPageSize)
	body, err := c.get(ctx, apiSource, endpoint)
	if err != nil {
		return nil, err
	}
	var rows []nodeRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, ports.ParseFailure(apiSource, "decode nodes", err)
	}
	out := make([]models.NodeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.NodeEntry{Key: models.Key(row.BLS), Identity: models.Identity(row.Identity)})
	}
	return out, nil
}

// ListAddresses returns the staking provider contract addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, apiSource, c.apiURL+"/providers?fields=provider")
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, ports.ParseFailure(apiSource, "decode providers", err)
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Provider != "" {
			out = append(out, row.Provider)
		}
	}
	return out, nil
}

// GetMetadata returns the provider's metadata, nil when the provider is
// unknown.
func (c *Client) GetMetadata(ctx context.Context, address string) (*models.ProviderMetadata, error) {
	resp, err := c.http.Get(ctx, c.apiURL+"/providers/"+url.PathEscape(address))
	if err != nil {
		return nil, ports.Unavailable(apiSource, "get provider", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ports.Unavailable(apiSource, fmt.Sprintf("get provider: status %d", resp.StatusCode), nil)
	}
	var meta models.ProviderMetadata
	if err := json.Unmarshal(resp.Body, &meta); err != nil {
		return nil, ports.ParseFailure(apiSource, "decode provider", err)
	}
	return &meta, nil
}

func (c *Client) get(ctx context.Context, source, endpoint string) ([]byte, error) {
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, ports.Unavailable(source, "request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ports.Unavailable(source, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	return resp.Body, nil
}
