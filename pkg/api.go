// Package pkg runs a complete pkgender invocation: validate the request,
// detect the save layout, patch the trainer data and commit the result.
package pkg

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/pkgender/pkg/config"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
	"github.com/provide-io/pkgender/pkg/save/gen4"
	"github.com/provide-io/pkgender/pkg/save/txn"
)

// Options describes one invocation
type Options struct {
	SavePath   string
	Request    gen4.ChangeRequest
	VerifyOnly bool
	Game       *gen4.Layout // Skip detection and verify against this layout
	Config     *config.Config

	backupToken func() string
}

// Outcome reports what Run did
type Outcome struct {
	Layout     gen4.Layout
	Warnings   []gen4.IntegrityWarning
	Before     gen4.Trainer
	After      gen4.Trainer
	BackupPath string
	Written    bool
}

// Run performs the invocation described by opts. The save file is only
// touched after the patched image is fully prepared and a backup exists.
func Run(opts Options, logger hclog.Logger) (*Outcome, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	game := opts.Game
	if game == nil {
		game = cfg.Game
	}

	if err := VerifySoundness(opts.SavePath, opts.Request, cfg.ExpectedExtension, logger); err != nil {
		return nil, err
	}

	image, err := os.ReadFile(opts.SavePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", saveerrors.ErrReadFailed, err)
	}
	logger.Debug("📖 Read save file", "path", opts.SavePath, "size", len(image))

	var detection *gen4.Detection
	if game != nil {
		detection, err = gen4.VerifyLayout(image, *game, logger)
	} else {
		detection, err = gen4.Detect(image, logger)
	}
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Layout: detection.Layout, Warnings: detection.Warnings}
	outcome.Before = readTrainer(image, detection.Layout, logger)
	outcome.After = outcome.Before
	logger.Info("👤 Current trainer", "name", outcome.Before.Name, "gender", outcome.Before.Gender)

	if opts.VerifyOnly {
		logger.Info("🔒 Verify only, save file left unchanged")
		return outcome, nil
	}
	if opts.Request.IsEmpty() {
		logger.Info("ℹ️ No changes requested, checksums will be rewritten unchanged")
	}

	patched, err := gen4.Patch(image, detection.Layout, opts.Request, logger)
	if err != nil {
		return nil, err
	}

	result, err := txn.Commit(opts.SavePath, patched, txn.Options{
		BackupInfix: cfg.BackupInfix,
		Token:       opts.backupToken,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	outcome.BackupPath = result.BackupPath
	outcome.Written = true
	outcome.After = readTrainer(patched, detection.Layout, logger)

	logger.Info("🎉 Done!", "layout", detection.Layout, "backup", result.BackupPath)
	return outcome, nil
}

// readTrainer reads trainer data for reporting. An undecodable name is not
// fatal: names with characters outside the supported set are legal in game.
func readTrainer(image []byte, layout gen4.Layout, logger hclog.Logger) gen4.Trainer {
	trainer, err := gen4.ReadTrainer(image, layout)
	if err != nil {
		logger.Debug("⚠️ Could not decode trainer name", "error", err)
	}
	return trainer
}
