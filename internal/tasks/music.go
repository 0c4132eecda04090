package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/desertthunder/adx/internal/validation"
)

// DefaultDebounce is the window within which successive validation requests
// collapse into one remote call.
const DefaultDebounce = 500 * time.Millisecond

// maxMusicFileSize is the upper bound for locally supplied audio files (10 MiB).
const maxMusicFileSize = 10 * 1024 * 1024

// allowedMusicTypes whitelists MIME types for locally supplied audio files.
var allowedMusicTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/aac":   true,
	"audio/m4a":   true,
}

// MusicValidator is the slice of the ads service the coordinator needs.
type MusicValidator interface {
	ValidateMusicID(ctx context.Context, musicID string) (bool, error)
}

// MusicCoordinator resolves music identifiers against the remote catalog with
// debouncing, cancellation, and strict request-order verdict application.
// One coordinator serves one music field instance; its verdict is the single
// authoritative result for that field.
type MusicCoordinator struct {
	svc      MusicValidator
	debounce time.Duration
	logger   *log.Logger
	updates  chan models.MusicVerdict

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	verdict models.MusicVerdict
}

// CoordinatorOpts contains configuration options for creating a MusicCoordinator.
type CoordinatorOpts struct {
	Service  MusicValidator
	Debounce time.Duration // Defaults to DefaultDebounce
	Logger   *log.Logger
}

// NewMusicCoordinator creates a coordinator with an idle verdict.
func NewMusicCoordinator(opts CoordinatorOpts) *MusicCoordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &MusicCoordinator{
		svc:      opts.Service,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		updates:  make(chan models.MusicVerdict, 16),
		verdict:  models.MusicVerdict{State: models.VerdictIdle},
	}
}

// Request starts validation of a catalog music identifier. Identifiers that
// fail the local format check are rejected immediately with no remote call.
// Otherwise the verdict moves to validating and the remote check dispatches
// after the debounce window; only the newest request within the window is
// issued, and a superseded request's late result is discarded.
func (c *MusicCoordinator) Request(ctx context.Context, musicID string) {
	musicID = strings.TrimSpace(musicID)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++

	if len(musicID) < validation.MusicIDMinLen {
		c.stopTimer()
		c.apply(models.MusicVerdict{
			State:   models.VerdictInvalid,
			MusicID: musicID,
			Reason:  models.ReasonInvalidFormat,
			Message: "Music ID must be at least 5 characters.",
		})
		return
	}

	c.apply(models.MusicVerdict{State: models.VerdictValidating, MusicID: musicID})

	seq := c.seq
	c.stopTimer()
	c.timer = time.AfterFunc(c.debounce, func() {
		c.dispatch(ctx, musicID, seq)
	})
}

// dispatch issues the remote check for a debounced request, unless a newer
// request has already superseded it.
func (c *MusicCoordinator) dispatch(ctx context.Context, musicID string, seq uint64) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	valid, err := c.svc.ValidateMusicID(ctx, musicID)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer request or Cancel superseded this one while the call was in
	// flight; its verdict is already authoritative.
	if seq != c.seq {
		c.logger.Debug("discarding superseded music verdict", "music_id", musicID)
		return
	}

	switch {
	case err != nil:
		c.logger.Error("music validation failed", "music_id", musicID, "err", err)
		c.apply(models.MusicVerdict{
			State:   models.VerdictInvalid,
			MusicID: musicID,
			Reason:  models.ReasonAPIError,
			Message: "Failed to validate music. Please try again.",
		})
	case valid:
		c.apply(models.MusicVerdict{
			State:   models.VerdictValid,
			MusicID: musicID,
			Message: "Music ID is valid and ready to use",
		})
	default:
		c.apply(models.MusicVerdict{
			State:   models.VerdictInvalid,
			MusicID: musicID,
			Reason:  models.ReasonNotFound,
			Message: "Music not found. Please check the ID and try again.",
		})
	}
}

// ValidateLocalFile checks a locally supplied audio file and, when
// acceptable, mints a unique identifier for it. No remote call is made; the
// identifier stands in for an upload step performed elsewhere.
func (c *MusicCoordinator) ValidateLocalFile(file models.FileRef) models.MusicVerdict {
	var verdict models.MusicVerdict

	switch {
	case !allowedMusicTypes[file.MIMEType]:
		verdict = models.MusicVerdict{
			State:   models.VerdictInvalid,
			Reason:  models.ReasonInvalidType,
			Message: "Invalid file type. Please upload MP3, WAV, or AAC files.",
		}
	case file.Size > maxMusicFileSize:
		verdict = models.MusicVerdict{
			State:   models.VerdictInvalid,
			Reason:  models.ReasonFileTooLarge,
			Message: "File size must be less than 10MB.",
		}
	default:
		musicID := fmt.Sprintf("custom_%d_%s", time.Now().UnixMilli(), shared.GenerateID()[:8])
		verdict = models.MusicVerdict{
			State:   models.VerdictValid,
			MusicID: musicID,
			Message: "Custom music uploaded successfully",
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.stopTimer()
	c.apply(verdict)

	return verdict
}

// CheckSelection validates the no-music choice against the campaign
// objective without touching the remote catalog.
func (c *MusicCoordinator) CheckSelection(option models.MusicOption, objective models.Objective) models.MusicVerdict {
	if option == models.MusicNone && objective == models.ObjectiveConversions {
		return models.MusicVerdict{
			State:   models.VerdictInvalid,
			Reason:  models.ReasonNotAllowedConversions,
			Message: "Music is required for Conversion campaigns.",
		}
	}

	return models.MusicVerdict{State: models.VerdictValid}
}

// Cancel invalidates any pending debounce timer and supersedes in-flight
// requests. After Cancel returns, no callback for an earlier request can
// change the verdict. Safe to call with nothing pending.
func (c *MusicCoordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.seq++
}

// Reset cancels outstanding work and returns the verdict to idle.
func (c *MusicCoordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.seq++
	c.apply(models.MusicVerdict{State: models.VerdictIdle})
}

// Current returns the authoritative verdict.
func (c *MusicCoordinator) Current() models.MusicVerdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

// Updates returns the verdict stream. The channel is buffered and publishes
// are non-blocking, so a stalled consumer loses intermediate verdicts rather
// than stalling the coordinator; Current always holds the latest.
func (c *MusicCoordinator) Updates() <-chan models.MusicVerdict {
	return c.updates
}

// apply records and publishes a verdict. Caller holds the lock.
func (c *MusicCoordinator) apply(verdict models.MusicVerdict) {
	c.verdict = verdict

	select {
	case c.updates <- verdict:
	default:
	}
}

// stopTimer halts the pending debounce timer, if any. Caller holds the lock.
func (c *MusicCoordinator) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
