package deployment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cwl_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// FileDeployer uploads local files to a remote location
type FileDeployer interface {
	DeployFile(ctx context.Context, localPath, filename string) error
	Disconnect() error
}

var _ FileDeployer = (*SSHDeployer)(nil)

// ReportUploader publishes generated report files through a FileDeployer.
// It must run after the sinks that write those files.
type ReportUploader struct {
	deployer FileDeployer
	paths    []string
}

// NewReportUploader creates an uploader for the given local report paths.
// Empty paths are ignored.
func NewReportUploader(deployer FileDeployer, paths ...string) *ReportUploader {
	var kept []string
	for _, p := range paths {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return &ReportUploader{deployer: deployer, paths: kept}
}

func (u *ReportUploader) Name() string {
	return "deploy"
}

// Publish uploads every report file that exists. Missing files are skipped
// with a warning; upload failures abort.
func (u *ReportUploader) Publish(ctx context.Context, board *app.Scoreboard) error {
	defer func() {
		if err := u.deployer.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("Failed to close deploy connection")
		}
	}()

	uploaded := 0
	for _, localPath := range u.paths {
		if _, err := os.Stat(localPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn().
					Str("local_path", localPath).
					Msg("Report file not found, skipping upload")
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", localPath, err)
		}

		if err := u.deployer.DeployFile(ctx, localPath, filepath.Base(localPath)); err != nil {
			return fmt.Errorf("failed to deploy %s: %w", localPath, err)
		}
		uploaded++
	}

	log.Info().
		Str("run_id", board.RunID).
		Int("files", uploaded).
		Msg("Uploaded report files")

	return nil
}
