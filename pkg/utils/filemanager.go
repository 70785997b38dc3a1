// =============================================================================
// Journal Order Builder - File Manager Utility
// =============================================================================
//
// This module provides file management utilities shared by the CLI and the
// HTTP surface:
//   - Directory management
//   - Uniqueness-salted file naming for the shared upload/output dirs
//   - Best-effort cleanup of transient upload files
//
// CLEANUP STRATEGY:
//   Uploaded CSVs are transient: once a run completes the source file has
//   no further value, so deletion failures are logged and swallowed, never
//   escalated. Output artifacts are kept for the session lifetime and
//   beyond; nothing here deletes them.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaltedName builds a collision-free file name for the shared directories:
// a short random salt plus the sanitized original base name.
func SaltedName(original string) string {
	return fmt.Sprintf("%s_%s", uuid.New().String()[:8], SanitizeFilename(original))
}

// SanitizeFilename strips path components and characters that have no
// business in a served file name.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	s := b.String()
	if s == "" || s == "." || s == ".." {
		s = "upload"
	}
	return s
}

// SaveUpload writes a multipart upload into dir under a salted name and
// returns the full path.
func SaveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(dir, SaltedName(fh.Filename))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return path, nil
}

// RemoveQuietly deletes a transient file best-effort. Failure is an
// ignorable cleanup problem: it is logged at debug level and swallowed.
func RemoveQuietly(path string, log *slog.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if log != nil {
			log.Debug("failed to remove transient file", "path", path, "error", err)
		}
	}
}
