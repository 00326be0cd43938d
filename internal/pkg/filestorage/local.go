package filestorage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/registrar/internal/pkg/logger"
)

// LocalStorage serves assets from a directory on the local filesystem.
type LocalStorage struct {
	basePath string // The root directory that holds the assets
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// The directory is created when missing so an empty asset tree is valid.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create asset directory")
		return nil, fmt.Errorf("failed to create asset directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Asset directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// resolve maps an asset name to a path inside basePath, rejecting names that
// escape the root.
func (ls *LocalStorage) resolve(name string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(name))
	if clean == "/" {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	return filepath.Join(ls.basePath, clean), nil
}

// Stat reports information about the named asset
func (ls *LocalStorage) Stat(name string) (*AssetInfo, error) {
	path, err := ls.resolve(name)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, name)
	}

	return &AssetInfo{
		Name:     name,
		Path:     path,
		FileSize: fi.Size(),
		Format:   strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")),
	}, nil
}

// Open returns a reader for the named asset. The caller closes it.
func (ls *LocalStorage) Open(name string) (io.ReadCloser, *AssetInfo, error) {
	info, err := ls.Stat(name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(info.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", info.Path).Msg("Failed to open asset")
		return nil, nil, fmt.Errorf("failed to open asset: %w", err)
	}
	return f, info, nil
}
