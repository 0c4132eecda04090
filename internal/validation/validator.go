package validation

import (
	"regexp"
	"strings"

	"github.com/desertthunder/adx/internal/models"
)

const (
	campaignNameMinLen = 3
	campaignNameMaxLen = 100
	adTextMinLen       = 10
	adTextMaxLen       = 100
	maxEmojis          = 5

	// MusicIDMinLen is the shortest acceptable music identifier.
	MusicIDMinLen = 5
)

var (
	campaignNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,:;!?()@&$#%]+$`)

	// MusicIDPattern matches well-formed music identifiers.
	MusicIDPattern = regexp.MustCompile(`^[0-9a-zA-Z_-]+$`)

	emojiPattern = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
)

// ValidateDraft evaluates every field and cross-field rule against the draft
// and returns all violations in rule order. An empty outcome means the draft
// may be submitted.
func ValidateDraft(d models.AdDraft) models.ValidationOutcome {
	var outcome models.ValidationOutcome

	outcome = append(outcome, ValidateCampaignName(d.CampaignName)...)
	outcome = append(outcome, ValidateAdText(d.AdText)...)

	if d.Objective == "" {
		outcome = append(outcome, models.Violation{
			Field: "objective", Rule: models.RuleRequired,
			Message: "Please select a campaign objective.",
		})
	} else if !d.Objective.Valid() {
		outcome = append(outcome, models.Violation{
			Field: "objective", Rule: models.RuleInvalidOption,
			Message: "Please select a campaign objective.",
		})
	}

	if d.CTA == "" {
		outcome = append(outcome, models.Violation{
			Field: "cta", Rule: models.RuleRequired,
			Message: "Please select a call-to-action.",
		})
	} else if !d.CTA.Valid() {
		outcome = append(outcome, models.Violation{
			Field: "cta", Rule: models.RuleInvalidOption,
			Message: "Please select a call-to-action.",
		})
	}

	outcome = append(outcome, ValidateMusicSelection(d.MusicOption, d.Objective)...)

	if d.MusicOption == models.MusicExisting {
		outcome = append(outcome, ValidateMusicID(d.MusicID)...)
	}

	return outcome
}

// ValidateCampaignName checks the campaign name rules: required, trimmed
// length within [3,100], and restricted to letters, numbers, spaces, and
// basic punctuation.
func ValidateCampaignName(name string) models.ValidationOutcome {
	var outcome models.ValidationOutcome
	trimmed := strings.TrimSpace(name)

	switch {
	case trimmed == "":
		outcome = append(outcome, models.Violation{
			Field: "campaignName", Rule: models.RuleRequired,
			Message: "Campaign name is required.",
		})
	case len([]rune(trimmed)) < campaignNameMinLen:
		outcome = append(outcome, models.Violation{
			Field: "campaignName", Rule: models.RuleTooShort,
			Message: "Campaign name must be at least 3 characters.",
		})
	case len([]rune(trimmed)) > campaignNameMaxLen:
		outcome = append(outcome, models.Violation{
			Field: "campaignName", Rule: models.RuleTooLong,
			Message: "Campaign name cannot exceed 100 characters.",
		})
	case !campaignNamePattern.MatchString(trimmed):
		outcome = append(outcome, models.Violation{
			Field: "campaignName", Rule: models.RuleInvalidChars,
			Message: "Campaign name contains invalid characters.",
		})
	}

	return outcome
}

// ValidateAdText checks the ad text rules: required, trimmed length within
// [10,100], and no more than five emoji code points.
func ValidateAdText(text string) models.ValidationOutcome {
	var outcome models.ValidationOutcome
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		outcome = append(outcome, models.Violation{
			Field: "adText", Rule: models.RuleRequired,
			Message: "Ad text is required.",
		})
	case len([]rune(trimmed)) < adTextMinLen:
		outcome = append(outcome, models.Violation{
			Field: "adText", Rule: models.RuleTooShort,
			Message: "Ad text should be at least 10 characters.",
		})
	case len([]rune(trimmed)) > adTextMaxLen:
		outcome = append(outcome, models.Violation{
			Field: "adText", Rule: models.RuleTooLong,
			Message: "Ad text cannot exceed 100 characters.",
		})
	}

	if len(emojiPattern.FindAllString(text, -1)) > maxEmojis {
		outcome = append(outcome, models.Violation{
			Field: "adText", Rule: models.RuleTooManyEmojis,
			Message: "Too many emojis. Please use 5 or fewer.",
		})
	}

	return outcome
}

// ValidateMusicSelection enforces the cross-field rule: conversion campaigns
// cannot run without music.
func ValidateMusicSelection(option models.MusicOption, objective models.Objective) models.ValidationOutcome {
	var outcome models.ValidationOutcome

	if objective == models.ObjectiveConversions && option == models.MusicNone {
		outcome = append(outcome, models.Violation{
			Field: "musicOption", Rule: models.RuleMusicRequired,
			Message: "Music is required for Conversion campaigns.",
		})
	}

	return outcome
}

// ValidateMusicID checks a catalog music identifier: required, at least five
// characters, and limited to letters, numbers, hyphens, and underscores.
func ValidateMusicID(musicID string) models.ValidationOutcome {
	var outcome models.ValidationOutcome
	trimmed := strings.TrimSpace(musicID)

	switch {
	case trimmed == "":
		outcome = append(outcome, models.Violation{
			Field: "musicId", Rule: models.RuleRequired,
			Message: "Music ID is required for existing music.",
		})
	case len(trimmed) < MusicIDMinLen:
		outcome = append(outcome, models.Violation{
			Field: "musicId", Rule: models.RuleTooShort,
			Message: "Music ID must be at least 5 characters.",
		})
	case !MusicIDPattern.MatchString(trimmed):
		outcome = append(outcome, models.Violation{
			Field: "musicId", Rule: models.RuleInvalidChars,
			Message: "Music ID can only contain letters, numbers, hyphens, and underscores.",
		})
	}

	return outcome
}
