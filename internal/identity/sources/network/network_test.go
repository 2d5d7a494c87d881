package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
)

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/node/heartbeatstatus", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"heartbeats":[{"publicKey":"bls1","identity":"alice"},{"publicKey":"bls2","identity":""}]},"code":"successful"}`))
	})
	mux.HandleFunc("/nodes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bls,identity", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`[{"bls":"bls1","identity":"alice"},{"bls":"bls3","identity":"carol"}]`))
	})
	mux.HandleFunc("/providers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"provider":"erd1a"},{"provider":""},{"provider":"erd1b"}]`))
	})
	mux.HandleFunc("/providers/erd1a", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Staking A","website":"https://a.example","identity":"alice"}`))
	})
	mux.HandleFunc("/providers/erd1bad", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return httptest.NewServer(mux)
}

func TestNodeSource(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()
	client := New(srv.URL, srv.URL)

	t.Run("heartbeats", func(t *testing.T) {
		nodes, err := client.ListHeartbeats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.NodeEntry{
			{Key: "bls1", Identity: "alice"},
			{Key: "bls2", Identity: ""},
		}, nodes)
	})

	t.Run("all nodes", func(t *testing.T) {
		nodes, err := client.ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, nodes, 2)
		assert.Equal(t, models.Identity("carol"), nodes[1].Identity)
	})
}

func TestProviderSource(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()
	client := New(srv.URL, srv.URL)

	t.Run("addresses skip blanks", func(t *testing.T) {
		addrs, err := client.ListAddresses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"erd1a", "erd1b"}, addrs)
	})

	t.Run("metadata", func(t *testing.T) {
		meta, err := client.GetMetadata(context.Background(), "erd1a")
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Equal(t, models.Identity("alice"), meta.Identity)
		assert.Equal(t, "Staking A", meta.Name)
	})

	t.Run("unknown provider is nil", func(t *testing.T) {
		meta, err := client.GetMetadata(context.Background(), "erd1zzz")
		require.NoError(t, err)
		assert.Nil(t, meta)
	})

	t.Run("upstream failure is unavailable", func(t *testing.T) {
		_, err := client.GetMetadata(context.Background(), "erd1bad")
		require.Error(t, err)
		assert.Equal(t, ports.ErrorSourceUnavailable, ports.CategoryOf(err))
	})
}

func TestUnreachableRegistry(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, url).ListHeartbeats(context.Background())
	require.Error(t, err)
	assert.True(t, ports.IsRetryable(err))
}
