package confirmation

import (
	"fmt"
	"regexp"

	"keyproof/internal/identity/models"
)

const (
	namespaceLegacy  = "elrond"
	namespaceCurrent = "multiversx"
	keysFile         = "keys.json"

	// pageLinkPrefix is the host that listing pages link their entries under.
	pageLinkPrefix = "https://keybase.pub/"

	validatorKeyPattern    = `[0-9a-f]{192}`
	providerAddressPattern = `erd1qqqqqqqqqqqqqqqpqqqqqqqqqqqqqqqqqqqqqqqqqqqq[0-9a-z]{14}`
)

// networkSuffix is the path segment appended for non-default networks.
func networkSuffix(network string) string {
	if network == "" || network == defaultNetwork {
		return ""
	}
	return "/" + network
}

// pageURL is the hosted listing page of identity under namespace.
func pageURL(baseURL string, identity models.Identity, namespace, network string) string {
	return fmt.Sprintf("%s/%s/%s%s", baseURL, identity, namespace, networkSuffix(network))
}

// ExtractKeys returns the validator keys and provider addresses linked from
// a listing page of identity on network, in page order without duplicates.
// Tokens must sit directly after the namespace (and network) path segment and
// have exactly the expected length.
func ExtractKeys(html string, identity models.Identity, network string) []models.Key {
	prefix := regexp.QuoteMeta(pageLinkPrefix+string(identity)) + `/(?:` + namespaceLegacy + `|` + namespaceCurrent + `)/`
	if suffix := networkSuffix(network); suffix != "" {
		prefix += regexp.QuoteMeta(suffix[1:]) + `/`
	}

	validators := regexp.MustCompile(prefix + `(` + validatorKeyPattern + `)(?:[^0-9a-f]|$)`)
	providers := regexp.MustCompile(prefix + `(` + providerAddressPattern + `)(?:[^0-9a-z]|$)`)

	seen := make(map[string]struct{})
	var keys []models.Key
	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			if _, ok := seen[m[1]]; ok {
				continue
			}
			seen[m[1]] = struct{}{}
			keys = append(keys, models.Key(m[1]))
		}
	}
	collect(validators)
	collect(providers)
	return keys
}
