package tasks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/adx/internal/models"
)

func TestClassify(t *testing.T) {
	t.Run("token codes map to reconnect", func(t *testing.T) {
		for _, code := range []string{"INVALID_TOKEN", "EXPIRED_TOKEN"} {
			appErr := Classify(&models.RemoteError{Code: code, Message: "Access token is invalid."})

			if appErr.Type != models.ErrAuth {
				t.Errorf("%s: expected auth_error, got %s", code, appErr.Type)
			}
			if !appErr.Actionable || appErr.Action == nil {
				t.Fatalf("%s: expected actionable error with action", code)
			}
			if appErr.Action.Kind != models.ActionReconnect || appErr.Action.Label != "Reconnect TikTok Account" {
				t.Errorf("%s: unexpected action %+v", code, appErr.Action)
			}
		}
	})

	t.Run("insufficient permissions", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "INSUFFICIENT_PERMISSIONS", Message: "Missing ads.management scope."})

		if appErr.Type != models.ErrAuth {
			t.Errorf("expected auth_error, got %s", appErr.Type)
		}
		if appErr.Action == nil || appErr.Action.Kind != models.ActionReviewPermissions {
			t.Errorf("expected review_permissions action, got %+v", appErr.Action)
		}
		if appErr.Action != nil && appErr.Action.Label != "Review Permissions" {
			t.Errorf("unexpected label %q", appErr.Action.Label)
		}
	})

	t.Run("geo restricted is informational", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "GEO_RESTRICTED", Message: "Not available in your region."})

		if appErr.Type != models.ErrAPI {
			t.Errorf("expected api_error, got %s", appErr.Type)
		}
		if appErr.Actionable || appErr.Action != nil {
			t.Errorf("expected non-actionable error, got %+v", appErr)
		}
	})

	t.Run("invalid music id targets the field", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "INVALID_MUSIC_ID", Message: "Music not licensed for ads."})

		if appErr.Type != models.ErrValidation {
			t.Errorf("expected validation_error, got %s", appErr.Type)
		}
		if appErr.Field != "musicId" {
			t.Errorf("expected musicId field, got %q", appErr.Field)
		}
		if !appErr.Actionable {
			t.Error("expected actionable error")
		}
	})

	t.Run("invalid music id keeps remote field when present", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "INVALID_MUSIC_ID", Message: "bad", Field: "music_id"})
		if appErr.Field != "music_id" {
			t.Errorf("expected remote field preserved, got %q", appErr.Field)
		}
	})

	t.Run("unknown remote code falls through as api_error", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "RATE_LIMITED", Message: "Too many requests."})

		if appErr.Type != models.ErrAPI || appErr.Code != "RATE_LIMITED" {
			t.Errorf("unexpected classification: %+v", appErr)
		}
		if appErr.Message != "Too many requests." {
			t.Errorf("expected remote message preserved, got %q", appErr.Message)
		}
	})

	t.Run("empty remote message gets fallback", func(t *testing.T) {
		appErr := Classify(&models.RemoteError{Code: "SERVER_ERROR"})
		if appErr.Message != fallbackMessage {
			t.Errorf("expected fallback message, got %q", appErr.Message)
		}
	})

	t.Run("wrapped remote error unwraps", func(t *testing.T) {
		wrapped := fmt.Errorf("create ad: %w", &models.RemoteError{Code: "GEO_RESTRICTED", Message: "nope"})
		if appErr := Classify(wrapped); appErr.Code != "GEO_RESTRICTED" {
			t.Errorf("expected wrapped code recovered, got %s", appErr.Code)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		appErr := Classify(errors.New("dial tcp: connection refused"))

		if appErr.Type != models.ErrAPI || appErr.Code != "NETWORK_ERROR" {
			t.Errorf("unexpected classification: %+v", appErr)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		if appErr := Classify(nil); appErr == nil || appErr.Code != "NETWORK_ERROR" {
			t.Errorf("expected total classification for nil, got %+v", appErr)
		}
	})
}
