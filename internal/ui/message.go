package ui

import (
	"github.com/desertthunder/adx/internal/models"
)

// verdictMsg carries a music validation verdict from the coordinator's
// update stream into the Elm loop.
type verdictMsg models.MusicVerdict

// submitDoneMsg carries the outcome of a submission attempt.
type submitDoneMsg struct {
	receipt *models.AdReceipt
	appErr  *models.AppError
}
