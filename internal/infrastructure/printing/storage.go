package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ArtifactStore keeps rendered receipts so they can be handed out by URL
type ArtifactStore interface {
	// Put saves an artifact under key and returns where it can be fetched
	Put(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Get opens a stored artifact
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an artifact. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// StoreRequest contains the parameters for storing an artifact
type StoreRequest struct {
	// Key is the slash separated storage key, relative to the store root
	Key string
	// Data is the raw content
	Data []byte
	// ContentType is the MIME type of Data
	ContentType string
}

// StoreResult contains the result of storing an artifact
type StoreResult struct {
	Key  string
	URL  string
	Size int64
}

// ArtifactKey builds the storage key of a receipt: receipts/{year}/{month}/{sale_id}-{artifact_id}{ext}
func ArtifactKey(a *Artifact, ext string) string {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return fmt.Sprintf("receipts/%d/%02d/%d-%s%s",
		created.Year(), created.Month(), a.SaleID, a.ID.String(), ext)
}

// FileSystemStoreConfig contains configuration for file system storage
type FileSystemStoreConfig struct {
	// BasePath is the root directory for artifacts
	// Default: ./data/receipts
	BasePath string
	// BaseURL is the URL prefix for downloading artifacts
	// Example: https://pos.example.com/api/v1/artifacts
	BaseURL string
	// Logger for operations
	Logger *zap.Logger
}

// FileSystemStore stores artifacts on the local file system
type FileSystemStore struct {
	config *FileSystemStoreConfig
	logger *zap.Logger
}

// NewFileSystemStore creates a new file system based artifact store
func NewFileSystemStore(config *FileSystemStoreConfig) (*FileSystemStore, error) {
	if config == nil {
		config = &FileSystemStoreConfig{}
	}
	if config.BasePath == "" {
		config.BasePath = "./data/receipts"
	}
	if config.BaseURL == "" {
		config.BaseURL = "/api/v1/artifacts"
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if err := os.MkdirAll(config.BasePath, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStore{
		config: config,
		logger: logger,
	}, nil
}

// Put writes an artifact to {base}/{key}
func (s *FileSystemStore) Put(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if req == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if len(req.Data) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "artifact data is empty", nil)
	}

	fullPath, err := s.resolve(req.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}
	if err := os.WriteFile(fullPath, req.Data, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write artifact", err)
	}

	url := s.URL(req.Key)
	s.logger.Info("artifact stored",
		zap.String("path", fullPath),
		zap.Int("size", len(req.Data)),
		zap.String("url", url))

	return &StoreResult{
		Key:  req.Key,
		URL:  url,
		Size: int64(len(req.Data)),
	}, nil
}

// Get opens a stored artifact by key
func (s *FileSystemStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath) // #nosec G304 -- path is confined to BasePath by resolve
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewRenderError(ErrCodeNotFound, "artifact not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open artifact", err)
	}
	return file, nil
}

// Delete removes an artifact
func (s *FileSystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // Already deleted, not an error
		}
		return NewRenderError(ErrCodeStorageFailed, "failed to delete artifact", err)
	}
	s.logger.Info("artifact deleted", zap.String("key", key))
	return nil
}

// CleanupOlderThan removes artifacts older than the specified duration
func (s *FileSystemStore) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deletedCount := 0

	err := filepath.WalkDir(s.config.BasePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deletedCount++
				s.logger.Debug("deleted old artifact", zap.String("path", path))
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return deletedCount, NewRenderError(ErrCodeStorageFailed, "cleanup walk failed", err)
	}

	s.logger.Info("artifact cleanup completed",
		zap.Int("deleted", deletedCount),
		zap.Duration("age", age))
	return deletedCount, nil
}

// URL returns the download URL of a key
func (s *FileSystemStore) URL(key string) string {
	cleanKey := filepath.ToSlash(filepath.Clean(key))
	return s.config.BaseURL + "/" + strings.TrimPrefix(cleanKey, "/")
}

// resolve maps a key to a file under BasePath, refusing anything that escapes it
func (s *FileSystemStore) resolve(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", NewRenderError(ErrCodeStorageFailed, "artifact key is empty", nil)
	}
	cleanKey := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleanKey) || containsDotDot(key) {
		s.logger.Warn("blocked potentially malicious key",
			zap.String("key", key),
			zap.String("clean_key", cleanKey))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid key", nil)
	}

	fullPath := filepath.Join(s.config.BasePath, cleanKey)

	absBase, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		s.logger.Warn("path escape attempt blocked",
			zap.String("key", key),
			zap.String("abs_path", absPath),
			zap.String("abs_base", absBase))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid key", nil)
	}
	return fullPath, nil
}

// containsDotDot checks if a path contains ".." components
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}

// Ensure FileSystemStore implements ArtifactStore
var _ ArtifactStore = (*FileSystemStore)(nil)
