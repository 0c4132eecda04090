package tasks

import (
	"errors"

	"github.com/desertthunder/adx/internal/models"
)

// fallbackMessage is returned for failures the taxonomy has no entry for.
const fallbackMessage = "An unexpected error occurred. Please try again."

// Classify maps a raw remote failure to a typed [models.AppError]. It is
// total: any input, including nil, yields a usable error value.
func Classify(err error) *models.AppError {
	var remote *models.RemoteError
	if !errors.As(err, &remote) {
		return &models.AppError{
			Type:    models.ErrAPI,
			Code:    "NETWORK_ERROR",
			Message: "Network error. Please check your connection and try again.",
		}
	}

	message := remote.Message
	if message == "" {
		message = fallbackMessage
	}

	switch remote.Code {
	case "INVALID_TOKEN", "EXPIRED_TOKEN":
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       remote.Code,
			Message:    message,
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}

	case "INSUFFICIENT_PERMISSIONS":
		return &models.AppError{
			Type:       models.ErrAuth,
			Code:       remote.Code,
			Message:    message,
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReviewPermissions, Label: "Review Permissions"},
		}

	case "GEO_RESTRICTED":
		return &models.AppError{
			Type:    models.ErrAPI,
			Code:    remote.Code,
			Message: message,
		}

	case "INVALID_MUSIC_ID":
		field := remote.Field
		if field == "" {
			field = "musicId"
		}
		return &models.AppError{
			Type:       models.ErrValidation,
			Code:       remote.Code,
			Message:    message,
			Field:      field,
			Actionable: true,
		}

	default:
		return &models.AppError{
			Type:    models.ErrAPI,
			Code:    remote.Code,
			Message: message,
		}
	}
}
