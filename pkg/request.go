package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
	"github.com/provide-io/pkgender/pkg/save/gen4"
)

// VerifySoundness checks the save path and change request before the file is read
func VerifySoundness(savePath string, req gen4.ChangeRequest, expectedExt string, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	info, err := os.Stat(savePath)
	if err != nil {
		return fmt.Errorf("%w: not a valid file: %s: %v", saveerrors.ErrInvalidInput, savePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: not a valid file: %s", saveerrors.ErrInvalidInput, savePath)
	}
	if expectedExt != "" && !strings.EqualFold(filepath.Ext(savePath), expectedExt) {
		logger.Warn("⚠️ Save file does not have the expected extension", "path", savePath, "expected", expectedExt)
	}

	return req.Validate()
}
