package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/services"
	"github.com/desertthunder/adx/internal/shared"
)

// Authenticator is the slice of [services.AdsService] the manager needs.
type Authenticator interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error)
}

var _ Authenticator = (services.AdsService)(nil)

// Manager drives the token lifecycle state machine:
//
//	unauthenticated → pending_exchange → authenticated → expired → refreshing → authenticated|unauthenticated
//
// Every failing operation returns a [*models.AppError].
type Manager struct {
	store  Store
	svc    Authenticator
	logger *log.Logger
	now    func() time.Time

	mu    sync.Mutex
	phase models.TokenPhase
}

// ManagerOpts contains configuration options for creating a Manager.
type ManagerOpts struct {
	Store   Store
	Service Authenticator
	Logger  *log.Logger
	Now     func() time.Time // Clock override for tests
}

// NewManager creates a Manager and derives the initial phase from whatever
// token state the store already holds.
func NewManager(opts ManagerOpts) *Manager {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Manager{
		store:  opts.Store,
		svc:    opts.Service,
		logger: opts.Logger,
		now:    opts.Now,
	}
	m.phase = m.derivePhase()

	return m
}

// Begin generates a fresh state nonce, persists it, and returns the
// authorization URL the advertiser should visit.
func (m *Manager) Begin() (string, error) {
	nonce := shared.GenerateNonce()
	if err := m.store.Set(KeyOAuthState, nonce); err != nil {
		return "", storageError(err)
	}

	return m.svc.AuthURL(nonce), nil
}

// Exchange completes the authorization-code flow. The state parameter must
// match the stored nonce or the exchange is refused without a remote call.
// The nonce is consumed either way.
func (m *Manager) Exchange(ctx context.Context, code, state string) error {
	m.mu.Lock()

	storedState, err := m.store.Get(KeyOAuthState)
	if err != nil {
		m.mu.Unlock()
		return storageError(err)
	}
	if err := m.store.Delete(KeyOAuthState); err != nil {
		m.mu.Unlock()
		return storageError(err)
	}

	if storedState == "" || state != storedState {
		m.mu.Unlock()
		m.logger.Warn("oauth state mismatch", "expected", storedState != "")
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       "STATE_MISMATCH",
			Message:    "Security verification failed. Please restart the connection process.",
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}
	}

	m.phase = models.PhasePendingExchange
	m.mu.Unlock()

	grant, err := m.svc.ExchangeCode(ctx, code)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil || grant == nil || grant.AccessToken == "" {
		m.phase = models.PhaseUnauthenticated
		m.logger.Error("token exchange failed", "err", err)
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       "OAUTH_FAILED",
			Message:    "Failed to complete authorization. Please try again.",
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}
	}

	if err := m.persistGrant(grant); err != nil {
		m.phase = models.PhaseUnauthenticated
		return err
	}

	m.phase = models.PhaseAuthenticated
	m.logger.Info("authenticated", "expires_in", grant.ExpiresIn)

	return nil
}

// CheckValidity is a pure read of the stored token: it never mutates state
// and never touches the network.
func (m *Manager) CheckValidity() models.TokenValidity {
	token, err := m.store.Get(KeyAccessToken)
	if err != nil || token == "" {
		return models.TokenMissing
	}

	expiry := m.readExpiry()
	if expiry > 0 && m.now().UnixMilli() > expiry {
		return models.TokenExpired
	}

	return models.TokenValid
}

// Refresh exchanges the stored refresh token for fresh credentials. A failed
// refresh clears every stored token field; no partial state is retained.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()

	refreshToken, err := m.store.Get(KeyRefreshToken)
	if err != nil {
		m.mu.Unlock()
		return storageError(err)
	}
	if refreshToken == "" {
		m.mu.Unlock()
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       "NO_REFRESH_TOKEN",
			Message:    "Unable to refresh session. Please reconnect.",
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}
	}

	m.phase = models.PhaseRefreshing
	m.mu.Unlock()

	grant, err := m.svc.RefreshToken(ctx, refreshToken)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil || grant == nil || grant.AccessToken == "" {
		m.clearTokens()
		m.phase = models.PhaseUnauthenticated
		m.logger.Error("token refresh failed", "err", err)
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       "REFRESH_FAILED",
			Message:    "Unable to refresh session. Please reconnect.",
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}
	}

	if err := m.persistGrant(grant); err != nil {
		m.clearTokens()
		m.phase = models.PhaseUnauthenticated
		return err
	}

	m.phase = models.PhaseAuthenticated
	m.logger.Info("token refreshed", "expires_in", grant.ExpiresIn)

	return nil
}

// Logout unconditionally clears all persisted token fields and OAuth state
// markers. Safe to call repeatedly.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearTokens()
	m.phase = models.PhaseUnauthenticated
	m.logger.Info("logged out")

	return nil
}

// State returns a snapshot of the current token state. The phase is
// re-derived against the clock so a token that expired after the last
// lifecycle transition is reported as expired, not authenticated.
func (m *Manager) State() models.TokenState {
	m.mu.Lock()
	if m.phase == models.PhaseAuthenticated && m.CheckValidity() == models.TokenExpired {
		m.phase = models.PhaseExpired
	}
	phase := m.phase
	m.mu.Unlock()

	access, _ := m.store.Get(KeyAccessToken)
	refresh, _ := m.store.Get(KeyRefreshToken)

	return models.TokenState{
		Phase:        phase,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    m.readExpiry(),
	}
}

// derivePhase maps persisted token state to a lifecycle phase at startup.
func (m *Manager) derivePhase() models.TokenPhase {
	switch m.CheckValidity() {
	case models.TokenValid:
		return models.PhaseAuthenticated
	case models.TokenExpired:
		return models.PhaseExpired
	default:
		return models.PhaseUnauthenticated
	}
}

// persistGrant stores the grant's tokens and computed expiry. Caller holds the lock.
func (m *Manager) persistGrant(grant *models.TokenGrant) error {
	if err := m.store.Set(KeyAccessToken, grant.AccessToken); err != nil {
		return storageError(err)
	}
	if grant.RefreshToken != "" {
		if err := m.store.Set(KeyRefreshToken, grant.RefreshToken); err != nil {
			return storageError(err)
		}
	}
	if grant.ExpiresIn > 0 {
		expiry := m.now().UnixMilli() + grant.ExpiresIn*1000
		if err := m.store.Set(KeyTokenExpiry, strconv.FormatInt(expiry, 10)); err != nil {
			return storageError(err)
		}
	}

	return nil
}

// clearTokens removes every persisted token entry. Caller holds the lock.
func (m *Manager) clearTokens() {
	for _, key := range tokenKeys {
		if err := m.store.Delete(key); err != nil {
			m.logger.Warn("failed to clear token entry", "key", key, "err", err)
		}
	}
}

// readExpiry returns the stored expiry in epoch milliseconds, or zero.
func (m *Manager) readExpiry() int64 {
	raw, err := m.store.Get(KeyTokenExpiry)
	if err != nil || raw == "" {
		return 0
	}

	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}

	return expiry
}

// storageError wraps a store failure in the error taxonomy.
func storageError(err error) *models.AppError {
	return &models.AppError{
		Type:    models.ErrAPI,
		Code:    "STORAGE_ERROR",
		Message: "Failed to access token storage: " + err.Error(),
	}
}
