// Package github adapts the GitHub REST API to the repository-content and
// user-info capabilities of the identity pipeline.
package github

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

const sourceName = "github"

var (
	rawAccept  = http.Header{"Accept": []string{"application/vnd.github.raw+json"}}
	jsonAccept = http.Header{"Accept": []string{"application/vnd.github+json"}}
)

// Client reads repository files and user records.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New builds a client against baseURL. A non-empty token is sent as a bearer
// credential.
func New(baseURL, token string, opts ...httpclient.Option) *Client {
	if token != "" {
		opts = append(opts, httpclient.WithHeader("Authorization", "Bearer "+token))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(opts...),
	}
}

// GetFile returns the raw content of path in owner/repo. found is false on a
// 404 for either the repository or the file.
func (c *Client) GetFile(ctx context.Context, owner, repo, path string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), strings.TrimLeft(path, "/"))
	resp, err := c.http.Get(ctx, endpoint, rawAccept)
	if err != nil {
		return "", false, ports.Unavailable(sourceName, "get file", err)
	}
	return parseFileResponse(resp.StatusCode, resp.Body)
}

// GetUser returns the user record, nil when the user does not exist.
func (c *Client) GetUser(ctx context.Context, username string) (*models.UserInfo, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	resp, err := c.http.Get(ctx, endpoint, jsonAccept)
	if err != nil {
		return nil, ports.Unavailable(sourceName, "get user", err)
	}
	return parseUserResponse(resp.StatusCode, resp.Body)
}

func parseFileResponse(status int, body []byte) (string, bool, error) {
	switch {
	case status == http.StatusNotFound:
		return "", false, nil
	case status != http.StatusOK:
		return "", false, ports.Unavailable(sourceName, fmt.Sprintf("unexpected status %d", status), nil)
	}
	return string(body), true, nil
}

type userResponse struct {
	Name            string `json:"name"`
	AvatarURL       string `json:"avatar_url"`
	Bio             string `json:"bio"`
	Location        string `json:"location"`
	TwitterUsername string `json:"twitter_username"`
	Blog            string `json:"blog"`
}

func parseUserResponse(status int, body []byte) (*models.UserInfo, error) {
	switch {
	case status == http.StatusNotFound:
		return nil, nil
	case status != http.StatusOK:
		return nil, ports.Unavailable(sourceName, fmt.Sprintf("unexpected status %d", status), nil)
	}
	var u userResponse
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, ports.ParseFailure(sourceName, "decode user", err)
	}
	return &models.UserInfo{
		Name:          u.Name,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		Location:      u.Location,
		TwitterHandle: u.TwitterUsername,
		Blog:          u.Blog,
	}, nil
}
