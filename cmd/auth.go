package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/adx/internal/formatter"
	"github.com/desertthunder/adx/internal/server"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin executes the OAuth2 authorization flow with a local HTTP callback server.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	authURL, err := r.session.Begin()
	if err != nil {
		return fmt.Errorf("failed to start authorization: %w", err)
	}

	oauthHandler := server.NewOAuthHandler(r.session.Exchange)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for TikTok authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Connected to TikTok\n")
}

// AuthStatus shows the session phase and the result of a token validity check.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	state := r.session.State()
	validity := r.session.CheckValidity()

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Phase    string `json:"phase"`
			Validity string `json:"validity"`
			Expires  int64  `json:"expires_at,omitempty"`
		}{string(state.Phase), string(validity), state.ExpiresAt}, true)
	}

	return r.writePlain("%s", formatter.SessionToText(state, validity))
}

// AuthRefresh exchanges the stored refresh token for a new access token.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.session.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	r.logger.Info("token refreshed")
	return r.writePlain("✓ Token refreshed\n")
}

// AuthLogout clears all stored tokens.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}
