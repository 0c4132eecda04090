package auth

// Store is the key-value port for persisted token state. Get returns an
// empty string for an absent key; errors are reserved for storage failures.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Persisted entry keys. Presence or absence of these drives the derived
// token phase on startup.
const (
	KeyAccessToken  = "tiktok_access_token"
	KeyRefreshToken = "tiktok_refresh_token"
	KeyTokenExpiry  = "tiktok_token_expiry"
	KeyOAuthState   = "oauth_state"
)

// tokenKeys lists every entry cleared on logout or failed refresh.
var tokenKeys = []string{KeyAccessToken, KeyRefreshToken, KeyTokenExpiry, KeyOAuthState}
