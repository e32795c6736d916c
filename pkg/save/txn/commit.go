// Package txn persists a patched save image: the original file is always
// backed up to a unique sibling path before it is overwritten.
package txn

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
)

// DefaultBackupInfix separates the original file stem from the backup token
const DefaultBackupInfix = "__bak_"

// Options controls Commit
type Options struct {
	BackupInfix string        // Defaults to DefaultBackupInfix
	Token       func() string // Backup token source, defaults to NewToken
	Logger      hclog.Logger  // Defaults to a null logger
}

// Result describes a completed commit
type Result struct {
	Path       string
	BackupPath string
	Written    int
}

// NewToken returns a random 32 hex digit token
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// BackupPath returns the sibling backup path for path: the token is
// inserted, after infix, between the file stem and its extension.
func BackupPath(path, token, infix string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+infix+token+ext)
}

// Commit backs up the file at path, then replaces its contents with patched.
// If the backup cannot be created the original file is left untouched.
func Commit(path string, patched []byte, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	infix := opts.BackupInfix
	if infix == "" {
		infix = DefaultBackupInfix
	}
	token := opts.Token
	if token == nil {
		token = NewToken
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", saveerrors.ErrBackupFailed, err)
	}
	backupPath := BackupPath(absPath, token(), infix)

	logger.Info("💾 Creating a backup", "path", absPath)
	if err := copyFile(absPath, backupPath); err != nil {
		return nil, fmt.Errorf("%w: %v", saveerrors.ErrBackupFailed, err)
	}
	logger.Info("✅ Backup created, revert to it if you have any issues", "backup", backupPath)

	logger.Debug("✍️ Writing patched save", "path", absPath, "size", len(patched))
	if err := overwrite(absPath, patched); err != nil {
		return nil, fmt.Errorf("%w: %v", saveerrors.ErrWriteFailed, err)
	}

	return &Result{Path: absPath, BackupPath: backupPath, Written: len(patched)}, nil
}

// copyFile copies src to a new file dst, keeping mode and modification
// time. dst must not exist. A partial dst is removed on failure.
func copyFile(src, dst string) (err error) {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return err
	}
	if !sourceInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sourceInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	if err = destFile.Sync(); err != nil {
		return err
	}

	if err := os.Chtimes(dst, sourceInfo.ModTime(), sourceInfo.ModTime()); err != nil && !errors.Is(err, os.ErrPermission) {
		return err
	}
	return nil
}

// overwrite truncates path and writes data to it
func overwrite(path string, data []byte) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = file.Write(data); err != nil {
		return err
	}
	return file.Sync()
}
