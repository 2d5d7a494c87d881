// Package keybase adapts keybase.io profile lookups and keybase.pub hosted
// pages to the identity pipeline.
package keybase

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
	lookupSource = "keybase.io"
	pageSource   = "keybase.pub"
	lookupPath   = "/_/api/1.0/user/lookup.json"
)

// LookupClient queries the keybase.io user lookup API.
type LookupClient struct {
	baseURL string
	http    *httpclient.Client
}

func NewLookupClient(baseURL string, opts ...httpclient.Option) *LookupClient {
	return &LookupClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(opts...),
	}
}

// Lookup returns the lookup record for username. A non-200 answer or a
// non-zero status code yields a result with StatusOK false.
func (c *LookupClient) Lookup(ctx context.Context, username string) (*models.LookupResult, error) {
	endpoint := c.baseURL + lookupPath + "?username=" + url.QueryEscape(username)
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, ports.Unavailable(lookupSource, "lookup user", err)
	}
	return parseLookupResponse(resp.StatusCode, resp.Body)
}

type lookupResponse struct {
	Status struct {
		Code int `json:"code"`
	} `json:"status"`
	Them *struct {
		Profile *struct {
			FullName string `json:"full_name"`
			Bio      string `json:"bio"`
			Location string `json:"location"`
		} `json:"profile"`
		Pictures *struct {
			Primary *struct {
				URL string `json:"url"`
			} `json:"primary"`
		} `json:"pictures"`
		ProofsSummary *struct {
			All []struct {
				ProofType  string `json:"proof_type"`
				ServiceURL string `json:"service_url"`
			} `json:"all"`
		} `json:"proofs_summary"`
	} `json:"them"`
}

func parseLookupResponse(status int, body []byte) (*models.LookupResult, error) {
	if status != http.StatusOK {
		return nil, ports.Unavailable(lookupSource, fmt.Sprintf("unexpected status %d", status), nil)
	}
	var r lookupResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, ports.ParseFailure(lookupSource, "decode lookup", err)
	}
	if r.Status.Code != 0 || r.Them == nil {
		return &models.LookupResult{}, nil
	}

	out := &models.LookupResult{StatusOK: true}
	if p := r.Them.Profile; p != nil {
		out.FullName = p.FullName
		out.Bio = p.Bio
		out.Location = p.Location
	}
	if pics := r.Them.Pictures; pics != nil && pics.Primary != nil {
		out.AvatarURL = pics.Primary.URL
	}
	if ps := r.Them.ProofsSummary; ps != nil {
		for _, proof := range ps.All {
			out.Proofs = append(out.Proofs, models.Proof{Type: proof.ProofType, URL: proof.ServiceURL})
		}
	}
	return out, nil
}

// PageClient fetches hosted pages.
type PageClient struct {
	http *httpclient.Client
}

func NewPageClient(opts ...httpclient.Option) *PageClient {
	return &PageClient{http: httpclient.New(opts...)}
}

// Fetch returns the page at url, nil on 404.
func (c *PageClient) Fetch(ctx context.Context, url string) (*models.WebPage, error) {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return nil, ports.Unavailable(pageSource, "fetch page", err)
	}
	return parsePageResponse(resp.StatusCode, resp.Body)
}

func parsePageResponse(status int, body []byte) (*models.WebPage, error) {
	switch {
	case status == http.StatusNotFound:
		return nil, nil
	case status < 200 || status >= 300:
		return nil, ports.Unavailable(pageSource, fmt.Sprintf("unexpected status %d", status), nil)
	}
	return &models.WebPage{StatusCode: status, Body: string(body)}, nil
}
