// Package ports declares the collaborator contracts of the identity pipeline.
// Services depend only on these capability interfaces; concrete adapters live
// under sources/ and store/.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"keyproof/internal/identity/models"
)

// NodeSource is the node registry.
type NodeSource interface {
	// ListHeartbeats returns the currently heartbeating nodes.
	ListHeartbeats(ctx context.Context) ([]models.NodeEntry, error)
	// ListAll returns every known node, online or not.
	ListAll(ctx context.Context) ([]models.NodeEntry, error)
}

// ProviderSource is the staking provider registry.
type ProviderSource interface {
	ListAddresses(ctx context.Context) ([]string, error)
	GetMetadata(ctx context.Context, address string) (*models.ProviderMetadata, error)
}

// RepoContentSource reads a file from a source-hosting repository. found is
// false when the repository or file does not exist.
type RepoContentSource interface {
	GetFile(ctx context.Context, owner, repo, path string) (content string, found bool, err error)
}

// UserInfoSource reads a source-hosting user record. A nil record means the
// user does not exist.
type UserInfoSource interface {
	GetUser(ctx context.Context, username string) (*models.UserInfo, error)
}

// ProfileLookupSource queries the profile-lookup API.
type ProfileLookupSource interface {
	Lookup(ctx context.Context, username string) (*models.LookupResult, error)
}

// WebPageSource fetches a web page. A nil page means the page does not exist.
type WebPageSource interface {
	Fetch(ctx context.Context, url string) (*models.WebPage, error)
}

// CacheStore is a key/value store with per-key TTL. Set always overwrites.
// BatchGet returns one entry per key, nil for misses.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	BatchGet(ctx context.Context, keys []string) ([][]byte, error)
	BatchSet(ctx context.Context, keys []string, values [][]byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// PersistenceStore holds the durable per-identity confirmation records.
// GetKeys returns nil when no record exists.
type PersistenceStore interface {
	GetKeys(ctx context.Context, identity models.Identity) ([]models.Key, error)
	SetKeys(ctx context.Context, identity models.Identity, keys []models.Key) error
}
