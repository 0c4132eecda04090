package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEnums(t *testing.T) {
	t.Run("Objective", func(t *testing.T) {
		if !ObjectiveTraffic.Valid() || !ObjectiveConversions.Valid() {
			t.Error("expected known objectives to be valid")
		}
		if Objective("awareness").Valid() {
			t.Error("expected unknown objective to be invalid")
		}
		if Objective("").Valid() {
			t.Error("expected empty objective to be invalid")
		}
	})

	t.Run("CallToAction", func(t *testing.T) {
		for _, cta := range CallToActions {
			if !cta.Valid() {
				t.Errorf("expected %s to be valid", cta)
			}
		}
		if CallToAction("buy_now").Valid() {
			t.Error("expected unknown CTA to be invalid")
		}
	})

	t.Run("MusicOption", func(t *testing.T) {
		for _, opt := range MusicOptions {
			if !opt.Valid() {
				t.Errorf("expected %s to be valid", opt)
			}
		}
		if MusicOption("library").Valid() {
			t.Error("expected unknown music option to be invalid")
		}
	})
}

func TestValidationOutcome(t *testing.T) {
	t.Run("Empty Outcome Is Valid", func(t *testing.T) {
		var outcome ValidationOutcome
		if !outcome.Valid() {
			t.Error("expected empty outcome to be valid")
		}
		if outcome.First() != nil {
			t.Error("expected nil first violation")
		}
	})

	t.Run("First Returns Leading Violation", func(t *testing.T) {
		outcome := ValidationOutcome{
			{Field: "campaignName", Rule: RuleRequired, Message: "Campaign name is required."},
			{Field: "adText", Rule: RuleTooShort, Message: "Ad text should be at least 10 characters."},
		}
		if outcome.Valid() {
			t.Error("expected outcome with violations to be invalid")
		}
		first := outcome.First()
		if first == nil || first.Field != "campaignName" {
			t.Errorf("expected first violation on campaignName, got %+v", first)
		}
	})
}

func TestAppError(t *testing.T) {
	appErr := &AppError{
		Type:       ErrAuth,
		Code:       "INVALID_TOKEN",
		Message:    "Your session has expired. Please reconnect your TikTok account.",
		Actionable: true,
		Action:     &ErrorAction{Kind: ActionReconnect, Label: "Reconnect Now"},
	}

	if appErr.Error() != "INVALID_TOKEN: Your session has expired. Please reconnect your TikTok account." {
		t.Errorf("unexpected error string: %s", appErr.Error())
	}

	var target *AppError
	if !errors.As(error(appErr), &target) {
		t.Error("expected AppError to satisfy errors.As")
	}
}

func TestRemoteError(t *testing.T) {
	remote := &RemoteError{Code: "GEO_RESTRICTED", Message: "This feature is not available in your region."}

	var target *RemoteError
	if !errors.As(error(remote), &target) {
		t.Error("expected RemoteError to satisfy errors.As")
	}
	if target.Code != "GEO_RESTRICTED" {
		t.Errorf("expected code GEO_RESTRICTED, got %s", target.Code)
	}
}

func TestAdDraftJSON(t *testing.T) {
	data := []byte(`{
		"campaign_name": "Summer Sale",
		"objective": "traffic",
		"ad_text": "Check out our new arrivals today!",
		"cta": "shop_now",
		"music_option": "existing",
		"music_id": "track_12345"
	}`)

	var draft AdDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		t.Fatalf("failed to unmarshal draft: %v", err)
	}

	if draft.CampaignName != "Summer Sale" {
		t.Errorf("expected campaign name Summer Sale, got %s", draft.CampaignName)
	}
	if draft.Objective != ObjectiveTraffic {
		t.Errorf("expected objective traffic, got %s", draft.Objective)
	}
	if draft.CTA != CTAShopNow {
		t.Errorf("expected cta shop_now, got %s", draft.CTA)
	}
	if draft.MusicID != "track_12345" {
		t.Errorf("expected music id track_12345, got %s", draft.MusicID)
	}
	if draft.CustomMusic != nil {
		t.Error("expected no custom music file")
	}
}
