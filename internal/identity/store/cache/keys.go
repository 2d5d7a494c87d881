package cache

import "keyproof/internal/identity/models"

// Cache key layout shared with the public API that reads these entries.
const (
	confirmationPrefix     = "keybase:"
	profilePrefix          = "identityProfile:"
	providerMetadataPrefix = "providerMetadata:"

	// ConfirmationMapKey holds the aggregated confirmation map.
	ConfirmationMapKey = "keybases"
	// ProfilesKey holds the aggregated profile list.
	ProfilesKey = "identityProfilesKeybases"
)

// ConfirmationKey is the per-key confirmed flag.
func ConfirmationKey(key models.Key) string {
	return confirmationPrefix + string(key)
}

// ProfileKey is the per-identity resolved profile.
func ProfileKey(identity models.Identity) string {
	return profilePrefix + string(identity)
}

// ProviderMetadataKey is the per-address provider metadata.
func ProviderMetadataKey(address string) string {
	return providerMetadataPrefix + address
}

// ConfirmationKeys maps ConfirmationKey over keys.
func ConfirmationKeys(keys []models.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = ConfirmationKey(k)
	}
	return out
}
