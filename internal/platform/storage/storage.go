package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
)

const (
	SubdirProducts = "products"
	SubdirPayments = "payments"
)

var ErrFileTooLarge = errors.New("uploaded file exceeds size limit")

// publicPrefixes maps storage subdirectories to the URL paths the router
// serves them under.
var publicPrefixes = map[string]string{
	SubdirProducts: "/api/products/uploads",
	SubdirPayments: "/api/orders/payments",
}

// Store keeps uploaded images on local disk under root/<subdir>/ and
// hands back the public reference path for each saved file.
type Store struct {
	root    string
	maxSize int64
}

func New(root string, maxSize int64) (*Store, error) {
	for subdir := range publicPrefixes {
		if err := os.MkdirAll(filepath.Join(root, subdir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir %s: %w", subdir, err)
		}
	}
	return &Store{root: root, maxSize: maxSize}, nil
}

// Save stores the uploaded file under subdir and returns its public
// reference path. The stored name is unique; the original name only
// contributes its extension.
func (s *Store) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	prefix, ok := publicPrefixes[subdir]
	if !ok {
		return "", fmt.Errorf("unknown upload subdir %q", subdir)
	}
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(strings.ReplaceAll(fh.Filename, " ", "")))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(s.root, subdir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}
	return prefix + "/" + name, nil
}

// Dir returns the on-disk directory backing subdir, for static serving.
func (s *Store) Dir(subdir string) string {
	return filepath.Join(s.root, subdir)
}

// RefToName extracts the stored filename from a public reference path.
func RefToName(ref string) string {
	return filepath.Base(ref)
}

// SweepOrphanedProofs deletes payment proof files older than retention
// that no order references. The file write and the order insert are not
// atomic, so a crash between them leaves an orphan; this bounds how long
// one survives. Returns the number of files removed.
func (s *Store) SweepOrphanedProofs(ctx context.Context, retention time.Duration, referencedRefs func(context.Context) ([]string, error)) (int, error) {
	refs, err := referencedRefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list referenced proofs: %w", err)
	}
	inUse := make(map[string]bool, len(refs))
	for _, ref := range refs {
		inUse[RefToName(ref)] = true
	}

	dir := s.Dir(SubdirPayments)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read payments dir: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || inUse[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Error("SweepOrphanedProofs: failed to remove "+entry.Name(), err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("SweepOrphanedProofs: removed %d orphaned payment file(s)", removed)
	}
	return removed, nil
}
