package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyproof/internal/identity/ports"
)

func TestGetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.raw+json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/repos/alice/multiversx/contents/keys.json":
			_, _ = w.Write([]byte(`["k1","k2"]`))
		case "/repos/alice/broken/contents/keys.json":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL+"/", "secret")

	t.Run("returns file content", func(t *testing.T) {
		content, found, err := client.GetFile(context.Background(), "alice", "multiversx", "keys.json")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `["k1","k2"]`, content)
	})

	t.Run("404 is not found, not an error", func(t *testing.T) {
		_, found, err := client.GetFile(context.Background(), "alice", "elrond", "keys.json")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("server error is source unavailable", func(t *testing.T) {
		_, _, err := client.GetFile(context.Background(), "alice", "broken", "keys.json")
		require.Error(t, err)
		assert.Equal(t, ports.ErrorSourceUnavailable, ports.CategoryOf(err))
	})
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/alice":
			_, _ = w.Write([]byte(`{"name":"Alice","avatar_url":"https://a/png","bio":"validator","location":"Berlin","twitter_username":"alice_x","blog":"https://alice.dev"}`))
		case "/users/garbled":
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "")

	t.Run("decodes user", func(t *testing.T) {
		user, err := client.GetUser(context.Background(), "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "https://a/png", user.AvatarURL)
		assert.Equal(t, "validator", user.Bio)
		assert.Equal(t, "Berlin", user.Location)
		assert.Equal(t, "alice_x", user.TwitterHandle)
		assert.Equal(t, "https://alice.dev", user.Blog)
	})

	t.Run("unknown user is nil", func(t *testing.T) {
		user, err := client.GetUser(context.Background(), "bob")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("malformed body is a parse failure", func(t *testing.T) {
		_, err := client.GetUser(context.Background(), "garbled")
		require.Error(t, err)
		assert.Equal(t, ports.ErrorParseFailure, ports.CategoryOf(err))
	})
}
