package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/adx/internal/formatter"
	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/desertthunder/adx/internal/validation"
	"github.com/urfave/cli/v3"
)

// readDraft loads and parses an ad draft JSON file.
func (r *Runner) readDraft(path string) (*models.AdDraft, error) {
	data, err := shared.VerifyAndReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := shared.ValidateJSON(data); err != nil {
		return nil, err
	}

	var draft models.AdDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("%w: failed to parse draft: %v", shared.ErrInvalidInput, err)
	}

	return &draft, nil
}

// AdValidate validates a draft file and reports every violation without submitting.
func (r *Runner) AdValidate(ctx context.Context, cmd *cli.Command) error {
	draft, err := r.readDraft(cmd.StringArg("path"))
	if err != nil {
		return err
	}

	outcome := validation.ValidateDraft(*draft)

	switch {
	case cmd.Bool("json"):
		if err := r.writeJSON(outcome, true); err != nil {
			return err
		}
	case cmd.Bool("csv"):
		data, err := formatter.OutcomeToCSV(outcome)
		if err != nil {
			return err
		}
		if err := r.writePlain("%s", data); err != nil {
			return err
		}
	default:
		if err := r.writePlain("%s", formatter.OutcomeToText(outcome)); err != nil {
			return err
		}
	}

	if !outcome.Valid() {
		return fmt.Errorf("%w: draft failed validation with %d violation(s)", shared.ErrInvalidInput, len(outcome))
	}

	return nil
}

// AdSubmit submits a draft file for review, refreshing an expired token first
// when a refresh token is available.
func (r *Runner) AdSubmit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	draft, err := r.readDraft(cmd.StringArg("path"))
	if err != nil {
		return err
	}

	if r.session.CheckValidity() == models.TokenExpired {
		r.logger.Info("access token expired, attempting refresh")
		if err := r.session.Refresh(ctx); err != nil {
			r.logger.Warn("refresh failed", "error", err)
		}
	}

	receipt, appErr := r.engine.Submit(ctx, *draft, r.session.State())
	if appErr != nil {
		r.writePlain("✗ %s\n", appErr.Message)
		if appErr.Actionable && appErr.Action != nil {
			r.writePlain("→ %s\n", appErr.Action.Label)
		}
		return fmt.Errorf("%w: %s", shared.ErrSubmissionFailed, appErr.Code)
	}

	r.logger.Infof("ad submitted with id %v", receipt.AdID)

	if cmd.Bool("save") {
		result, err := formatter.WriteReceiptExport(receipt, cmd.String("export"))
		if err != nil {
			return fmt.Errorf("failed to export receipt: %w", err)
		}
		r.writePlain("✓ Receipt exported to %s\n", result.ReceiptFile)
	}

	if cmd.Bool("json") {
		return r.writeJSON(receipt, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Ad submitted for review\n")
	return r.writePlain("%s", formatter.ReceiptToText(receipt))
}
