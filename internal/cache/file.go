package cache

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	apperrors "tiercache/internal/common/errors"
)

const (
	tierFile = "file"

	fileExt  = ".json"
	fileMode = 0o644
	dirMode  = 0o755
)

// fileTier stores one file per key in dir. Files have no expiry and are
// written in place, so a crash mid-write can leave a truncated file behind.
type fileTier[V any] struct {
	dir   string
	codec Codec[V]
}

func newFileTier[V any](dir string, codec Codec[V]) (*fileTier[V], error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, apperrors.StorageError("cannot create fallback directory", err).
			WithContext("dir", dir)
	}
	return &fileTier[V]{dir: dir, codec: codec}, nil
}

// path maps a key to its file. Plain keys become <key>.json; anything that
// could escape the directory, such as a slash, is percent-escaped.
func (f *fileTier[V]) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+fileExt)
}

func (f *fileTier[V]) name() string { return tierFile }

func (f *fileTier[V]) get(key string) Result[V] {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return resultMiss[V](tierFile)
	}
	if err != nil {
		return resultFailed[V](tierFile, apperrors.StorageError("cannot read fallback file", err))
	}

	value, err := f.codec.Unmarshal(data)
	if err != nil {
		return resultFailed[V](tierFile, err)
	}
	return resultHit(tierFile, value)
}

func (f *fileTier[V]) set(key string, p payload[V]) Result[V] {
	if p.encErr != nil {
		return resultFailed[V](tierFile, p.encErr)
	}
	if err := os.WriteFile(f.path(key), p.data, fileMode); err != nil {
		return resultFailed[V](tierFile, apperrors.StorageError("cannot write fallback file", err))
	}
	return resultOK[V](tierFile)
}

func (f *fileTier[V]) delete(key string) Result[V] {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return resultMiss[V](tierFile)
	}
	if err != nil {
		return resultFailed[V](tierFile, apperrors.StorageError("cannot delete fallback file", err))
	}
	return resultOK[V](tierFile)
}

// clear removes every regular file in dir, including files this cache never
// wrote. Subdirectories are left alone. A failure on one file does not stop
// the others.
func (f *fileTier[V]) clear() Result[V] {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return resultFailed[V](tierFile, apperrors.StorageError("cannot list fallback directory", err))
	}

	var result *multierror.Error
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return resultFailed[V](tierFile, apperrors.StorageError("cannot clear fallback directory", err))
	}
	return resultOK[V](tierFile)
}
