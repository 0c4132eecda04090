package validation

import (
	"strings"
	"testing"

	"github.com/desertthunder/adx/internal/models"
)

func validDraft() models.AdDraft {
	return models.AdDraft{
		CampaignName: "Summer Sale",
		Objective:    models.ObjectiveTraffic,
		AdText:       "Check out our new arrivals today!",
		CTA:          models.CTAShopNow,
		MusicOption:  models.MusicNone,
	}
}

func hasRule(outcome models.ValidationOutcome, field, rule string) bool {
	for _, v := range outcome {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

func TestValidateDraft(t *testing.T) {
	t.Run("Valid Draft", func(t *testing.T) {
		outcome := ValidateDraft(validDraft())
		if !outcome.Valid() {
			t.Errorf("expected valid draft, got violations: %+v", outcome)
		}
	})

	t.Run("Collects All Violations", func(t *testing.T) {
		outcome := ValidateDraft(models.AdDraft{})
		if outcome.Valid() {
			t.Fatal("expected violations for empty draft")
		}

		for _, field := range []string{"campaignName", "adText", "objective", "cta"} {
			if !hasRule(outcome, field, models.RuleRequired) {
				t.Errorf("expected required violation for %s, got %+v", field, outcome)
			}
		}
	})

	t.Run("Violations In Rule Order", func(t *testing.T) {
		outcome := ValidateDraft(models.AdDraft{})
		if outcome.First() == nil || outcome.First().Field != "campaignName" {
			t.Errorf("expected campaignName violation first, got %+v", outcome.First())
		}
	})
}

func TestValidateCampaignName(t *testing.T) {
	t.Run("Required", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			outcome := ValidateCampaignName(name)
			if !hasRule(outcome, "campaignName", models.RuleRequired) {
				t.Errorf("expected required violation for %q", name)
			}
		}
	})

	t.Run("Length Boundaries", func(t *testing.T) {
		if outcome := ValidateCampaignName("ab"); !hasRule(outcome, "campaignName", models.RuleTooShort) {
			t.Error("expected too_short for 2 characters")
		}
		if outcome := ValidateCampaignName("abc"); !outcome.Valid() {
			t.Errorf("expected exactly 3 characters to pass, got %+v", outcome)
		}
		if outcome := ValidateCampaignName(strings.Repeat("a", 100)); !outcome.Valid() {
			t.Errorf("expected exactly 100 characters to pass, got %+v", outcome)
		}
		if outcome := ValidateCampaignName(strings.Repeat("a", 101)); !hasRule(outcome, "campaignName", models.RuleTooLong) {
			t.Error("expected too_long for 101 characters")
		}
	})

	t.Run("Charset", func(t *testing.T) {
		if outcome := ValidateCampaignName("Summer Sale - 50% off! (US & CA)"); !outcome.Valid() {
			t.Errorf("expected punctuation to be allowed, got %+v", outcome)
		}
		if outcome := ValidateCampaignName("Summer <Sale>"); !hasRule(outcome, "campaignName", models.RuleInvalidChars) {
			t.Error("expected invalid_chars for angle brackets")
		}
	})
}

func TestValidateAdText(t *testing.T) {
	t.Run("Required", func(t *testing.T) {
		if outcome := ValidateAdText(""); !hasRule(outcome, "adText", models.RuleRequired) {
			t.Error("expected required violation")
		}
	})

	t.Run("Length Boundaries", func(t *testing.T) {
		if outcome := ValidateAdText("too short"); !hasRule(outcome, "adText", models.RuleTooShort) {
			t.Error("expected too_short for 9 characters")
		}
		if outcome := ValidateAdText("ten chars!"); !outcome.Valid() {
			t.Errorf("expected exactly 10 characters to pass, got %+v", outcome)
		}
		if outcome := ValidateAdText(strings.Repeat("a", 101)); !hasRule(outcome, "adText", models.RuleTooLong) {
			t.Error("expected too_long for 101 characters")
		}
	})

	t.Run("Emoji Limit", func(t *testing.T) {
		if outcome := ValidateAdText("Big sale today 🎉🎉🎉🎉🎉"); !outcome.Valid() {
			t.Errorf("expected exactly 5 emojis to pass, got %+v", outcome)
		}
		if outcome := ValidateAdText("Big sale today 🎉🎉🎉🎉🎉🎉"); !hasRule(outcome, "adText", models.RuleTooManyEmojis) {
			t.Error("expected too_many_emojis for 6 emojis")
		}
	})
}

func TestValidateMusicSelection(t *testing.T) {
	t.Run("Conversions Forbid No Music", func(t *testing.T) {
		outcome := ValidateMusicSelection(models.MusicNone, models.ObjectiveConversions)
		if !hasRule(outcome, "musicOption", models.RuleMusicRequired) {
			t.Errorf("expected music_required violation, got %+v", outcome)
		}
	})

	t.Run("Traffic Allows No Music", func(t *testing.T) {
		if outcome := ValidateMusicSelection(models.MusicNone, models.ObjectiveTraffic); !outcome.Valid() {
			t.Errorf("expected no violation, got %+v", outcome)
		}
	})

	t.Run("Conversions With Music", func(t *testing.T) {
		for _, opt := range []models.MusicOption{models.MusicExisting, models.MusicCustom} {
			if outcome := ValidateMusicSelection(opt, models.ObjectiveConversions); !outcome.Valid() {
				t.Errorf("expected %s to satisfy the cross-rule, got %+v", opt, outcome)
			}
		}
	})

	t.Run("Draft Level Cross Rule", func(t *testing.T) {
		draft := validDraft()
		draft.Objective = models.ObjectiveConversions
		draft.MusicOption = models.MusicNone

		outcome := ValidateDraft(draft)
		if !hasRule(outcome, "musicOption", models.RuleMusicRequired) {
			t.Errorf("expected music_required violation, got %+v", outcome)
		}
	})
}

func TestValidateMusicID(t *testing.T) {
	cases := []struct {
		name    string
		musicID string
		rule    string
	}{
		{"empty", "", models.RuleRequired},
		{"whitespace only", "   ", models.RuleRequired},
		{"too short", "abcd", models.RuleTooShort},
		{"invalid characters", "track 123!", models.RuleInvalidChars},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ValidateMusicID(tt.musicID)
			if !hasRule(outcome, "musicId", tt.rule) {
				t.Errorf("expected %s violation for %q, got %+v", tt.rule, tt.musicID, outcome)
			}
		})
	}

	t.Run("Valid IDs", func(t *testing.T) {
		for _, id := range []string{"track_12345", "abc-DEF_123", "12345"} {
			if outcome := ValidateMusicID(id); !outcome.Valid() {
				t.Errorf("expected %q to be valid, got %+v", id, outcome)
			}
		}
	})

	t.Run("Only Checked For Existing Music", func(t *testing.T) {
		draft := validDraft()
		draft.MusicOption = models.MusicCustom
		draft.MusicID = ""

		if outcome := ValidateDraft(draft); !outcome.Valid() {
			t.Errorf("expected custom music draft to skip music ID rules, got %+v", outcome)
		}
	})
}
