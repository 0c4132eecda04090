package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/urfave/cli/v3"
)

// MusicCheck validates a catalog music ID against the remote catalog.
func (r *Runner) MusicCheck(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	musicID := cmd.StringArg("id")
	if musicID == "" {
		return fmt.Errorf("%w: music ID", shared.ErrMissingArgument)
	}

	r.logger.Info("validating music", "music_id", musicID)
	r.coordinator.Request(ctx, musicID)

	var verdict models.MusicVerdict
	for v := range r.coordinator.Updates() {
		if v.State != models.VerdictValidating {
			verdict = v
			break
		}
	}

	return r.reportVerdict(cmd, verdict)
}

// MusicUpload validates a local audio file and mints a custom music ID.
func (r *Runner) MusicUpload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrInvalidArgument, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", shared.ErrInvalidArgument, path)
	}

	mimeTypes := map[string]string{
		".mp3": "audio/mpeg",
		".wav": "audio/wav",
		".aac": "audio/aac",
		".m4a": "audio/m4a",
	}

	verdict := r.coordinator.ValidateLocalFile(models.FileRef{
		Name:     filepath.Base(path),
		MIMEType: mimeTypes[strings.ToLower(filepath.Ext(path))],
		Size:     info.Size(),
	})

	return r.reportVerdict(cmd, verdict)
}

func (r *Runner) reportVerdict(cmd *cli.Command, verdict models.MusicVerdict) error {
	if cmd.Bool("json") {
		if err := r.writeJSON(verdict, true); err != nil {
			return err
		}
	} else if verdict.State == models.VerdictValid {
		r.writePlain("✓ %s\n", verdict.Message)
		if verdict.MusicID != "" {
			r.writePlain("Music ID: %s\n", verdict.MusicID)
		}
	} else {
		r.writePlain("✗ %s\n", verdict.Message)
	}

	if verdict.State != models.VerdictValid {
		return fmt.Errorf("%w: %s", shared.ErrMusicNotFound, verdict.Reason)
	}

	return nil
}
