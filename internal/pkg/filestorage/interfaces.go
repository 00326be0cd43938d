package filestorage

import (
	"errors"
	"io"
)

// ErrAssetNotFound is returned when a requested asset does not exist.
var ErrAssetNotFound = errors.New("asset not found")

// AssetInfo describes a stored asset
type AssetInfo struct {
	Name     string // Name relative to the storage root
	Path     string // Full filesystem path
	FileSize int64  // Size in bytes
	Format   string // Upper-case format derived from the extension, e.g. PNG
}

// AssetStore provides read access to static institutional assets such as the
// registrar's signature image.
type AssetStore interface {
	// Open returns a reader for the named asset
	Open(name string) (io.ReadCloser, *AssetInfo, error)

	// Stat reports information about the named asset
	Stat(name string) (*AssetInfo, error)
}
