// TikTok Business API implementation of [AdsService]
//
// OAuth endpoints based on https://business-api.tiktok.com/portal/docs
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	tiktokAuthURL  = "https://www.tiktok.com/v2/auth/authorize/"
	tiktokTokenURL = "https://open-api.tiktok.com/oauth/access_token/"
	tiktokBaseURL  = "https://business-api.tiktok.com/open_api/v1.3"

	// Scopes requested for every connection. Scope negotiation beyond this
	// fixed set is not supported.
	tiktokScopes = "ads.management,ads.music.basic"

	defaultRateLimit = 5.0
)

// TikTokOpts contains configuration options for creating a TikTokService.
type TikTokOpts struct {
	ClientKey    string
	ClientSecret string
	RedirectURI  string
	BaseURL      string       // Ads API base URL (default: production)
	RateLimit    float64      // Requests per second (default: 5)
	HTTPClient   *http.Client // Defaults to http.DefaultClient
}

// TikTokService implements the [AdsService] interface for TikTok Business API interactions.
// Uses [oauth2] for token grants and rate-limits every outbound request.
type TikTokService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTikTokService creates a new TikTok ads service with the given OAuth credentials.
func NewTikTokService(opts TikTokOpts) (*TikTokService, error) {
	if opts.ClientKey == "" {
		return nil, fmt.Errorf("%w: missing client_key", shared.ErrMissingCredentials)
	}
	if opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}
	if opts.RedirectURI == "" {
		opts.RedirectURI = "http://localhost:3000/callback"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = tiktokBaseURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientKey,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  tiktokAuthURL,
			TokenURL: tiktokTokenURL,
		},
	}

	return &TikTokService{
		config:     config,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}, nil
}

func (s *TikTokService) Name() string {
	return "TikTok"
}

// AuthURL returns the authorization URL for the advertiser to grant access.
//
// TikTok uses client_key rather than the standard client_id parameter, so the
// URL is assembled here instead of through [oauth2.Config.AuthCodeURL].
func (s *TikTokService) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_key", s.config.ClientID)
	params.Set("response_type", "code")
	params.Set("scope", tiktokScopes)
	params.Set("redirect_uri", s.config.RedirectURL)
	params.Set("state", state)

	return tiktokAuthURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for a token grant.
func (s *TikTokService) ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	return grantFromToken(token)
}

// RefreshToken exchanges a refresh token for a fresh token grant.
//
// TikTok may omit a new refresh token, in which case the previous one stays valid.
func (s *TikTokService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	grant, err := grantFromToken(token)
	if err != nil {
		return nil, err
	}
	if grant.RefreshToken == "" {
		grant.RefreshToken = refreshToken
	}

	return grant, nil
}

// grantFromToken maps an [oauth2.Token] to a [models.TokenGrant].
func grantFromToken(token *oauth2.Token) (*models.TokenGrant, error) {
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: response carried no access token", shared.ErrAuthFailed)
	}

	grant := &models.TokenGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		grant.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	return grant, nil
}

// ValidateMusicID checks whether a catalog music identifier is usable.
func (s *TikTokService) ValidateMusicID(ctx context.Context, musicID string) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	endpoint := fmt.Sprintf("%s/music/validate/?music_id=%s", s.baseURL, url.QueryEscape(musicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: music validation returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Data.Valid, nil
}

// submitEnvelope is the ad creation response shape.
type submitEnvelope struct {
	Success bool                `json:"success"`
	Data    *models.AdReceipt   `json:"data"`
	Error   *models.RemoteError `json:"error"`
}

// SubmitAd creates an ad from the draft.
//
// The platform reports rejections inside a response envelope rather than via
// HTTP status alone; those surface as [models.RemoteError].
func (s *TikTokService) SubmitAd(ctx context.Context, draft models.AdDraft, accessToken string) (*models.AdReceipt, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	endpoint := s.baseURL + "/ad/create/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Access-Token", accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	var envelope submitEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: submit returned status %d with unreadable body", shared.ErrAPIRequest, resp.StatusCode)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return nil, envelope.Error
		}
		return nil, fmt.Errorf("%w: submit returned status %d", shared.ErrSubmissionFailed, resp.StatusCode)
	}

	if envelope.Data == nil || envelope.Data.AdID == "" {
		return nil, fmt.Errorf("%w: success response carried no ad id", shared.ErrSubmissionFailed)
	}

	return envelope.Data, nil
}
