package models

// Identity is the human-readable handle a node or provider claims, such as a
// keybase or GitHub user name.
type Identity string

func (i Identity) String() string { return string(i) }

// Key is either a 192-hex-character validator BLS key or a staking provider
// address.
type Key string

func (k Key) String() string { return string(k) }

// CandidatePair is one (identity, key) claim gathered from the node and
// provider registries for a sweep.
type CandidatePair struct {
	Identity Identity
	Key      Key
}

// KeyState is the served confirmation state of one key.
type KeyState struct {
	Identity  Identity `json:"identity"`
	Confirmed bool     `json:"confirmed"`
}

// ConfirmationMap is the aggregate read model, keyed by key.
type ConfirmationMap map[Key]KeyState

// Profile is the resolved public metadata of an identity. Empty fields were
// not provided by the source.
type Profile struct {
	Identity    Identity `json:"identity"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Twitter     string   `json:"twitter,omitempty"`
	Website     string   `json:"website,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// NodeEntry is a node registry row.
type NodeEntry struct {
	Key      Key
	Identity Identity
}

// ProviderMetadata is the subset of staking provider metadata the pipeline
// reads.
type ProviderMetadata struct {
	Name     string   `json:"name,omitempty"`
	Website  string   `json:"website,omitempty"`
	Identity Identity `json:"identity,omitempty"`
}

// UserInfo is the source-hosting (GitHub) user record.
type UserInfo struct {
	Name          string
	AvatarURL     string
	Bio           string
	Location      string
	TwitterHandle string
	Blog          string
}

// Proof is one verification proof attached to a profile-lookup result.
type Proof struct {
	Type string
	URL  string
}

// LookupResult is the profile-lookup (keybase.io) record. StatusOK is false
// when the upstream answered but reported the user as unknown.
type LookupResult struct {
	StatusOK  bool
	FullName  string
	Bio       string
	Location  string
	AvatarURL string
	Proofs    []Proof
}

// WebPage is a fetched HTML page.
type WebPage struct {
	StatusCode int
	Body       string
}
