package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/services"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/desertthunder/adx/internal/validation"
)

// SubmitState represents the submission state machine position.
type SubmitState string

const (
	StateIdle       SubmitState = "idle"
	StateValidating SubmitState = "validating"
	StateSubmitting SubmitState = "submitting"
	StateSuccess    SubmitState = "success"
	StateFailed     SubmitState = "failed"
)

// SubmissionEngine drives one ad draft through field validation, the token
// gate, and the remote create call. At most one submission is in flight per
// engine; a dispatched remote call always runs to completion before the
// engine leaves the submitting state.
type SubmissionEngine struct {
	svc    services.AdsService
	logger *log.Logger

	mu       sync.Mutex
	state    SubmitState
	inflight bool
	receipt  *models.AdReceipt
	lastErr  *models.AppError
}

// NewSubmissionEngine creates an engine in the idle state.
func NewSubmissionEngine(svc services.AdsService, logger *log.Logger) *SubmissionEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SubmissionEngine{
		svc:    svc,
		logger: logger,
		state:  StateIdle,
	}
}

// Submit runs one submission attempt. The draft is validated first; a valid
// draft then requires an authenticated token before the remote call is made
// exactly once. Failures of any kind are stored and returned as a typed
// [models.AppError].
func (e *SubmissionEngine) Submit(ctx context.Context, draft models.AdDraft, tok models.TokenState) (*models.AdReceipt, *models.AppError) {
	e.mu.Lock()
	if e.inflight {
		e.mu.Unlock()
		return nil, &models.AppError{
			Type:    models.ErrAPI,
			Code:    "SUBMISSION_IN_FLIGHT",
			Message: "A submission is already in progress. Please wait for it to finish.",
		}
	}

	// The inflight flag is held across the whole attempt, including the
	// validation window before the state reaches submitting.
	e.inflight = true
	e.state = StateValidating
	e.receipt = nil
	e.lastErr = nil
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inflight = false
		e.mu.Unlock()
	}()

	if outcome := validation.ValidateDraft(draft); !outcome.Valid() {
		first := outcome.First()
		appErr := &models.AppError{
			Type:    models.ErrValidation,
			Code:    "VALIDATION_ERROR",
			Message: first.Message,
			Field:   first.Field,
		}
		e.logger.Warn("draft rejected", "field", first.Field, "rule", first.Rule)
		return nil, e.fail(appErr)
	}

	if tok.Phase != models.PhaseAuthenticated {
		appErr := &models.AppError{
			Type:       models.ErrAuth,
			Code:       "INVALID_TOKEN",
			Message:    "Your session has expired. Please reconnect your TikTok account.",
			Actionable: true,
			Action:     &models.ErrorAction{Kind: models.ActionReconnect, Label: "Reconnect TikTok Account"},
		}
		e.logger.Warn("submission without authenticated session", "phase", tok.Phase)
		return nil, e.fail(appErr)
	}

	e.mu.Lock()
	e.state = StateSubmitting
	e.mu.Unlock()

	e.logger.Info("submitting ad", "campaign", draft.CampaignName, "objective", draft.Objective)

	receipt, err := e.svc.SubmitAd(ctx, draft, tok.AccessToken)
	if err != nil {
		appErr := Classify(err)
		e.logger.Error("submission failed", "code", appErr.Code, "type", appErr.Type)
		return nil, e.fail(appErr)
	}

	e.mu.Lock()
	e.state = StateSuccess
	e.receipt = receipt
	e.mu.Unlock()

	e.logger.Info("ad created", "ad_id", receipt.AdID, "status", receipt.Status)

	return receipt, nil
}

// Retry re-runs Submit from the top after clearing any stored error. Each
// attempt is independent: the platform assigns a new ad id per attempt and
// the engine does not deduplicate, so retrying an attempt that partially
// succeeded can create a duplicate ad.
func (e *SubmissionEngine) Retry(ctx context.Context, draft models.AdDraft, tok models.TokenState) (*models.AdReceipt, *models.AppError) {
	e.mu.Lock()
	if !e.inflight {
		e.lastErr = nil
	}
	e.mu.Unlock()

	return e.Submit(ctx, draft, tok)
}

// Reset returns the engine to idle, discarding any stored receipt or error.
func (e *SubmissionEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateIdle
	e.receipt = nil
	e.lastErr = nil
}

// State returns the current state machine position.
func (e *SubmissionEngine) State() SubmitState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Receipt returns the stored receipt from the last successful attempt, or nil.
func (e *SubmissionEngine) Receipt() *models.AdReceipt {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.receipt
}

// LastError returns the stored error from the last failed attempt, or nil.
func (e *SubmissionEngine) LastError() *models.AppError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// fail records the error and moves the engine to the failed state.
func (e *SubmissionEngine) fail(appErr *models.AppError) *models.AppError {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateFailed
	e.lastErr = appErr

	return appErr
}
