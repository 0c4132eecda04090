// package services defines interface AdsService for interacting with the ads platform HTTP API
package services

import (
	"context"

	"github.com/desertthunder/adx/internal/models"
)

// AdsService defines the interface for the remote ads platform: OAuth grants,
// music catalog lookups, and ad creation.
type AdsService interface {
	// AuthURL returns the authorization URL the advertiser visits to grant
	// access, carrying the given CSRF state parameter.
	AuthURL(state string) string

	// ExchangeCode exchanges an authorization code for a token grant.
	ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error)

	// RefreshToken exchanges a refresh token for a fresh token grant.
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error)

	// ValidateMusicID checks whether a catalog music identifier is usable.
	// Returns false (without error) when the platform reports the track as
	// unknown or unlicensed.
	ValidateMusicID(ctx context.Context, musicID string) (bool, error)

	// SubmitAd creates an ad from the draft. A platform-rejected submission
	// returns a [models.RemoteError]; transport failures return plain errors.
	SubmitAd(ctx context.Context, draft models.AdDraft, accessToken string) (*models.AdReceipt, error)

	// Name returns the name of the ads platform (e.g., "TikTok")
	Name() string
}
